package importer

// IgnoreColumn is the sentinel token for a spreadsheet column the user chose
// not to import.
const IgnoreColumn = "ignore_column"

// wellKnownFields is the closed set of contact attributes eligible for direct
// column mapping. Any other token names a custom field.
var wellKnownFields = map[string]struct{}{
	"firstname":     {},
	"lastname":      {},
	"email":         {},
	"notes":         {},
	"linkedin":      {},
	"twitter":       {},
	"instagram":     {},
	"website":       {},
	"blog":          {},
	"location":      {},
	"phonenumber":   {},
	"employers":     {},
	"pastemployers": {},
}

// IsWellKnownField reports whether a token names a native contact attribute.
func IsWellKnownField(token string) bool {
	_, ok := wellKnownFields[token]
	return ok
}

// IsCustomField reports whether a token names a custom field. Tokens outside
// the well-known set always classify as custom.
func IsCustomField(token string) bool {
	return !IsWellKnownField(token)
}
