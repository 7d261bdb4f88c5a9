package types

// Fund identifies a scheme in a fund house catalog.
type Fund struct {
	SchemeCode int
	SchemeName string
}
