package config

import (
	"fmt"
	"os"
)

// WriteTemplate writes a starter config to path. An existing file is kept
// unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template), 0o600)
}

const Template = `# dlsgctl run configuration
input = "declaration.dc3"
output = ""
log_level = "warning"
dump = false

[dividend]
income_type = "14"
income_code = "1010"
income_description = "Дивиденды"
auto_currency_rate = "0"

# Extra or overriding currencies.
# [[currency]]
# alpha = "TRY"
# code = "949"
# name = "Турецкая лира"
# country = "792"
# units = 100
`
