package domain

// Environment names one deployment environment and the ordered list of
// values file paths making up its overlay chain (applied left-to-right,
// so the last file has the highest precedence).
type Environment struct {
	Name       string
	ValueFiles []string
}
