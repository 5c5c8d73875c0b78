// Package respcode declares the application response codes an operation
// may answer with and renders them as grouped, human-readable text for
// API documentation.
package respcode

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/message"
)

// CodeType is the coarse category a response code belongs to. Order
// controls the position of the category in rendered descriptions.
type CodeType struct {
	Name  string
	Order int
}

var (
	// Client codes report a malformed or rejected request.
	Client = CodeType{Name: "Client", Order: 10}
	// Auth codes report missing or insufficient credentials.
	Auth = CodeType{Name: "Auth", Order: 20}
	// Server codes report a failure while serving a valid request.
	Server = CodeType{Name: "Server", Order: 30}
	// System codes report platform or developer errors.
	System = CodeType{Name: "System", Order: 40}
)

// Code is one declared response code. Value is either numeric ("404") or
// symbolic ("DEV_ERR"); Status is the HTTP status the code is sent with.
type Code struct {
	Type    CodeType
	Value   string
	Status  int
	Message string
}

// New declares a code. Message is used both as the default text and as the
// lookup key in a message catalog.
func New(codeType CodeType, value any, status int, message string) Code {
	var v string
	switch val := value.(type) {
	case string:
		v = val
	case int:
		v = strconv.Itoa(val)
	default:
		panic("respcode: code value must be int or string")
	}
	return Code{Type: codeType, Value: v, Status: status, Message: message}
}

// Numeric reports the numeric value of the code, if it has one.
func (c Code) Numeric() (int, bool) {
	n, err := strconv.Atoi(c.Value)
	return n, err == nil
}

// StatusKey returns the status as used for keys of an OpenAPI responses map.
func (c Code) StatusKey() string {
	return strconv.Itoa(c.Status)
}

func (c Code) String() string {
	return c.Value
}

// Compare orders codes numerically ascending, non-numeric codes last and
// among themselves lexically.
func Compare(a, b Code) int {
	an, aok := a.Numeric()
	bn, bok := b.Numeric()
	switch {
	case aok && bok:
		return cmp.Compare(an, bn)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return strings.Compare(a.Value, b.Value)
	}
}

// Sort returns a sorted copy of codes. Equal codes keep their relative order.
func Sort(codes []Code) []Code {
	sorted := slices.Clone(codes)
	slices.SortStableFunc(sorted, Compare)
	return sorted
}

// Group is the set of codes of one category.
type Group struct {
	Type  CodeType
	Codes []Code
}

// GroupByType sorts codes and groups them by category. Groups are ordered by
// CodeType.Order, then by name.
func GroupByType(codes []Code) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, c := range Sort(codes) {
		i, ok := index[c.Type.Name]
		if !ok {
			i = len(groups)
			index[c.Type.Name] = i
			groups = append(groups, Group{Type: c.Type})
		}
		groups[i].Codes = append(groups[i].Codes, c)
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		if c := cmp.Compare(a.Type.Order, b.Type.Order); c != 0 {
			return c
		}
		return strings.Compare(a.Type.Name, b.Type.Name)
	})

	return groups
}

// ByStatus splits codes by HTTP status, keeping the status keys sorted.
func ByStatus(codes []Code) ([]int, map[int][]Code) {
	byStatus := make(map[int][]Code)
	for _, c := range codes {
		byStatus[c.Status] = append(byStatus[c.Status], c)
	}

	statuses := make([]int, 0, len(byStatus))
	for s := range byStatus {
		statuses = append(statuses, s)
	}
	slices.Sort(statuses)

	return statuses, byStatus
}

// Describe renders codes grouped by category, one line per code:
//
//	Client:
//	- 400: Bad request
//	- 404: Not found
//	System:
//	- DEV_ERR: Developer error
//
// Messages are translated with p when it is non-nil.
func Describe(codes []Code, p *message.Printer) string {
	groups := GroupByType(codes)
	lines := make([]string, 0, len(codes)+len(groups))

	for _, g := range groups {
		lines = append(lines, g.Type.Name+":")
		for _, c := range g.Codes {
			lines = append(lines, "- "+c.Value+": "+translate(p, c.Message))
		}
	}

	return strings.Join(lines, "\n")
}

// Text returns the translated message of a single code.
func Text(c Code, p *message.Printer) string {
	return translate(p, c.Message)
}

func translate(p *message.Printer, msg string) string {
	if p == nil || msg == "" {
		return msg
	}
	return p.Sprintf(msg)
}
