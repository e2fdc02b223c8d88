package record

// Attr is the closed set of record attributes a line can address.
type Attr int

const (
	AttrNone Attr = iota
	AttrName
	AttrSex
	AttrFamc
	AttrFams
	AttrHusb
	AttrWife
	AttrChil
	AttrBirt
	AttrDeat
	AttrMarr
	AttrDiv
)

var attrTags = map[string]Attr{
	"NAME": AttrName,
	"SEX":  AttrSex,
	"FAMC": AttrFamc,
	"FAMS": AttrFams,
	"HUSB": AttrHusb,
	"WIFE": AttrWife,
	"CHIL": AttrChil,
	"BIRT": AttrBirt,
	"DEAT": AttrDeat,
	"MARR": AttrMarr,
	"DIV":  AttrDiv,
}

// AttrForTag maps a line tag to its attribute. Unknown tags map to AttrNone.
func AttrForTag(tag string) Attr {
	return attrTags[tag]
}

// Repeats reports whether the attribute accumulates into a sequence.
func (a Attr) Repeats() bool {
	switch a {
	case AttrFamc, AttrFams, AttrChil:
		return true
	}
	return false
}

// IsEvent reports whether the attribute opens an Event block.
func (a Attr) IsEvent() bool {
	switch a {
	case AttrBirt, AttrDeat, AttrMarr, AttrDiv:
		return true
	}
	return false
}

func (a Attr) String() string {
	for tag, attr := range attrTags {
		if attr == a {
			return tag
		}
	}
	return "NONE"
}

// Kind discriminates the two record variants.
type Kind int

const (
	KindNone Kind = iota
	KindIndividual
	KindFamily
)

func (k Kind) String() string {
	switch k {
	case KindIndividual:
		return "individual"
	case KindFamily:
		return "family"
	default:
		return "none"
	}
}

// Record is a tagged reference to either an Individual or a Family.
// The zero Record refers to nothing.
type Record struct {
	Kind       Kind
	Individual *Individual
	Family     *Family
}

// NewIndividualRecord wraps ind.
func NewIndividualRecord(ind *Individual) Record {
	return Record{Kind: KindIndividual, Individual: ind}
}

// NewFamilyRecord wraps fam.
func NewFamilyRecord(fam *Family) Record {
	return Record{Kind: KindFamily, Family: fam}
}

// ID returns the identifier of the referenced record.
func (r Record) ID() string {
	switch r.Kind {
	case KindIndividual:
		return r.Individual.ID
	case KindFamily:
		return r.Family.ID
	}
	return ""
}

// SetScalar dispatches to the referenced record.
func (r Record) SetScalar(attr Attr, value string) bool {
	switch r.Kind {
	case KindIndividual:
		return r.Individual.SetScalar(attr, value)
	case KindFamily:
		return r.Family.SetScalar(attr, value)
	}
	return false
}

// AppendRef dispatches to the referenced record.
func (r Record) AppendRef(attr Attr, value string) bool {
	switch r.Kind {
	case KindIndividual:
		return r.Individual.AppendRef(attr, value)
	case KindFamily:
		return r.Family.AppendRef(attr, value)
	}
	return false
}

// OpenEvent dispatches to the referenced record.
func (r Record) OpenEvent(attr Attr) bool {
	switch r.Kind {
	case KindIndividual:
		return r.Individual.OpenEvent(attr)
	case KindFamily:
		return r.Family.OpenEvent(attr)
	}
	return false
}

// Event dispatches to the referenced record.
func (r Record) Event(attr Attr) Event {
	switch r.Kind {
	case KindIndividual:
		return r.Individual.Event(attr)
	case KindFamily:
		return r.Family.Event(attr)
	}
	return nil
}
