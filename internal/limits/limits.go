package limits

// Input limits for generated SQL, bounding memory use on untrusted input

const (
	// MaxInlineRows is the maximum number of rows in an inline table
	MaxInlineRows = 10000

	// MaxInlineColumns is the maximum number of columns in an inline table
	MaxInlineColumns = 1000

	// MaxPatternLength is the maximum size in bytes of a regular expression
	// handed to a translator. Longer patterns are reported as untranslatable.
	MaxPatternLength = 64 * 1024

	// MaxCachedTranslations bounds the translation cache of each dialect
	MaxCachedTranslations = 256
)
