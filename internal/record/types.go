package record

import "strings"

// Sex is the recorded sex of an individual.
type Sex string

const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = ""
)

// ParseSex maps the SEX argument to a Sex. Anything other than M or F is unknown.
func ParseSex(s string) Sex {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M":
		return SexMale
	case "F":
		return SexFemale
	default:
		return SexUnknown
	}
}

// Event bundles the sub-attributes of a birth, death, marriage or divorce.
// Keys are lower-cased sub-tags ("date", "plac").
type Event map[string]string

// Date returns the raw DATE text of the event.
func (e Event) Date() (string, bool) {
	if e == nil {
		return "", false
	}
	d, ok := e["date"]
	return d, ok
}

// Individual is an INDI record.
type Individual struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Sex      Sex      `json:"sex,omitempty"`
	Birth    Event    `json:"birth,omitempty"`
	Death    Event    `json:"death,omitempty"`
	SpouseOf []string `json:"fams,omitempty"` // FAMS
	ChildOf  []string `json:"famc,omitempty"` // FAMC
}

// Alive reports whether no death event was recorded.
func (i *Individual) Alive() bool {
	return i.Death == nil
}

// Surname returns the text between the slashes of a `given /surname/` name.
func (i *Individual) Surname() string {
	start := strings.IndexByte(i.Name, '/')
	if start < 0 {
		return ""
	}
	rest := i.Name[start+1:]
	if end := strings.IndexByte(rest, '/'); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// GivenName returns the first word of the name.
func (i *Individual) GivenName() string {
	fields := strings.Fields(strings.ReplaceAll(i.Name, "/", " "))
	if len(fields) == 0 {
		return ""
	}
	if strings.HasPrefix(strings.TrimSpace(i.Name), "/") {
		return ""
	}
	return fields[0]
}

// SetScalar overwrites a single-valued attribute.
// Returns false if attr is not a scalar attribute of individuals.
func (i *Individual) SetScalar(attr Attr, value string) bool {
	switch attr {
	case AttrName:
		i.Name = value
	case AttrSex:
		i.Sex = ParseSex(value)
	default:
		return false
	}
	return true
}

// AppendRef appends to a sequence attribute.
// Returns false if attr is not a sequence attribute of individuals.
func (i *Individual) AppendRef(attr Attr, value string) bool {
	switch attr {
	case AttrFams:
		i.SpouseOf = append(i.SpouseOf, value)
	case AttrFamc:
		i.ChildOf = append(i.ChildOf, value)
	default:
		return false
	}
	return true
}

// OpenEvent replaces the event attr with an empty one.
func (i *Individual) OpenEvent(attr Attr) bool {
	switch attr {
	case AttrBirt:
		i.Birth = Event{}
	case AttrDeat:
		i.Death = Event{}
	default:
		return false
	}
	return true
}

// Event returns the current event held by attr, nil if none.
func (i *Individual) Event(attr Attr) Event {
	switch attr {
	case AttrBirt:
		return i.Birth
	case AttrDeat:
		return i.Death
	}
	return nil
}

// Family is a FAM record. Empty Husband or Wife means absent.
type Family struct {
	ID       string   `json:"id"`
	Husband  string   `json:"husb,omitempty"`
	Wife     string   `json:"wife,omitempty"`
	Children []string `json:"chil,omitempty"`
	Marriage Event    `json:"marr,omitempty"`
	Divorce  Event    `json:"div,omitempty"`
}

// Spouses returns the husband and wife ids that are present.
func (f *Family) Spouses() []string {
	var out []string
	if f.Husband != "" {
		out = append(out, f.Husband)
	}
	if f.Wife != "" {
		out = append(out, f.Wife)
	}
	return out
}

// HasChild reports whether id is listed among the children.
func (f *Family) HasChild(id string) bool {
	for _, c := range f.Children {
		if c == id {
			return true
		}
	}
	return false
}

// SetScalar overwrites a single-valued attribute.
// Returns false if attr is not a scalar attribute of families.
//
// MARR with an argument (`1 MARR Y`) replaces the marriage event with one
// holding only the argument under "value".
func (f *Family) SetScalar(attr Attr, value string) bool {
	switch attr {
	case AttrHusb:
		f.Husband = value
	case AttrWife:
		f.Wife = value
	case AttrMarr:
		f.Marriage = Event{"value": value}
	default:
		return false
	}
	return true
}

// AppendRef appends to a sequence attribute.
// Returns false if attr is not a sequence attribute of families.
func (f *Family) AppendRef(attr Attr, value string) bool {
	if attr != AttrChil {
		return false
	}
	f.Children = append(f.Children, value)
	return true
}

// OpenEvent replaces the event attr with an empty one.
func (f *Family) OpenEvent(attr Attr) bool {
	switch attr {
	case AttrMarr:
		f.Marriage = Event{}
	case AttrDiv:
		f.Divorce = Event{}
	default:
		return false
	}
	return true
}

// Event returns the current event held by attr, nil if none.
func (f *Family) Event(attr Attr) Event {
	switch attr {
	case AttrMarr:
		return f.Marriage
	case AttrDiv:
		return f.Divorce
	}
	return nil
}
