package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jjenkins/gazette/internal/model"
	"github.com/jjenkins/gazette/internal/query"
	"github.com/jjenkins/gazette/internal/templates"
)

// Request parameters of the search page
const (
	paramText       = "q"
	paramCategory   = "tipo"
	paramCompany    = "empresa"
	paramIdentifier = "ruc"
	paramOrder      = "orden"
	paramNav        = "nav"
	paramPage       = "page"
)

// SpecFromRequest reads the filter specification from query parameters.
// Missing parameters fall back to DefaultSpec. Values are copied out of
// the request buffer since the spec outlives the request in session state.
func SpecFromRequest(c *fiber.Ctx) query.Spec {
	spec := query.DefaultSpec()
	spec.Text = utils.CopyString(c.Query(paramText))
	spec.Company = utils.CopyString(c.Query(paramCompany))
	spec.Identifier = utils.CopyString(c.Query(paramIdentifier))
	spec.Order = query.ParseOrder(c.Query(paramOrder))
	if cat := strings.TrimSpace(c.Query(paramCategory)); cat != "" {
		spec.Category = model.Category(utils.CopyString(cat))
	}
	return spec
}

// NavFromRequest reads the requested page movement. An explicit page
// number takes precedence over next/prev.
func NavFromRequest(c *fiber.Ctx) query.Nav {
	if p := c.Query(paramPage); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			return query.Nav{Kind: query.NavGoto, Page: n}
		}
	}
	switch c.Query(paramNav) {
	case "next":
		return query.Nav{Kind: query.NavNext}
	case "prev":
		return query.Nav{Kind: query.NavPrev}
	}
	return query.Nav{}
}

// FilterValues encodes spec as request parameters, omitting defaults
func FilterValues(spec query.Spec) url.Values {
	v := url.Values{}
	if spec.Text != "" {
		v.Set(paramText, spec.Text)
	}
	if spec.Category != "" && spec.Category != model.CategoryAll {
		v.Set(paramCategory, string(spec.Category))
	}
	if spec.Company != "" {
		v.Set(paramCompany, spec.Company)
	}
	if spec.Identifier != "" {
		v.Set(paramIdentifier, spec.Identifier)
	}
	if spec.Order != query.Descending {
		v.Set(paramOrder, string(spec.Order))
	}
	return v
}

// SearchHandler serves the search page, or only the results for HTMX
// requests. Pagination state is kept per session.
func SearchHandler(engine *query.Engine, sessions *Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		spec := SpecFromRequest(c)
		nav := NavFromRequest(c)

		var result query.Result
		sessions.With(c, func(state *query.State) {
			result = engine.Search(state, spec, nav)
		})

		view := templates.SearchView{
			Result:     result,
			Categories: engine.Categories(),
			Filters:    FilterValues(spec),
		}

		// Check if this is an HTMX request for just the results
		if c.Get("HX-Request") == "true" {
			page := templates.Results(view)
			handler := adaptor.HTTPHandler(templ.Handler(page))
			return handler(c)
		}

		page := templates.Search(view)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}
