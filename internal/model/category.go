package model

// Category is the document type assigned to a notice by the consolidation step
type Category string

// Categories recognized by the search. Values are the codes found in the
// "tipo" column of the consolidated gazette file.
const (
	CategoryDecreeSupreme         Category = "DECRETO_SUPREMO"
	CategoryResolutionSupreme     Category = "RESOLUCION_SUPREMA"
	CategoryResolutionMinisterial Category = "RESOLUCION_MINISTERIAL"
	CategoryLaw                   Category = "LEY"
	CategoryShareholderMeeting    Category = "JUNTA_ACCIONISTAS"
	CategoryDissolution           Category = "DISOLUCION"
	CategoryAuction               Category = "REMATE"
	CategoryNotice                Category = "AVISO"
)

// CategoryAll is the filter value that disables the category predicate
const CategoryAll Category = "all"

// Categories lists the closed enumeration in display order
var Categories = []Category{
	CategoryDecreeSupreme,
	CategoryResolutionSupreme,
	CategoryResolutionMinisterial,
	CategoryLaw,
	CategoryShareholderMeeting,
	CategoryDissolution,
	CategoryAuction,
	CategoryNotice,
}

// Valid reports whether c belongs to the enumeration
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Badge holds the label and css class used to render a category
type Badge struct {
	Label string
	Class string
}

var badges = map[Category]Badge{
	CategoryDecreeSupreme:         {Label: "DECRETO SUPREMO", Class: "badge-decreto"},
	CategoryResolutionSupreme:     {Label: "RESOLUCIÓN SUPREMA", Class: "badge-resolucion"},
	CategoryResolutionMinisterial: {Label: "RESOLUCIÓN MINISTERIAL", Class: "badge-resolucion"},
	CategoryLaw:                   {Label: "LEY", Class: "badge-ley"},
	CategoryShareholderMeeting:    {Label: "JUNTA", Class: "badge-junta"},
	CategoryDissolution:           {Label: "DISOLUCIÓN", Class: "badge-disolucion"},
	CategoryAuction:               {Label: "REMATE", Class: "badge-remate"},
	CategoryNotice:                {Label: "AVISO", Class: "badge"},
}

// Badge returns the display badge for c. Anything outside the enumeration
// renders as a generic notice rather than failing.
func (c Category) Badge() Badge {
	if b, ok := badges[c]; ok {
		return b
	}
	return badges[CategoryNotice]
}
