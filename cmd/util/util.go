package util

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/pMap/lib/pmap"
	"github.com/ValentinKolb/pMap/lib/pmap/engines/bucketlist"
	"github.com/ValentinKolb/pMap/lib/pmap/engines/mapheap"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("pmap")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetComparator reads the configured ordering and returns the matching
// comparator: largest value first for "max", smallest first for "min"
func GetComparator() (pmap.Compare[int], error) {
	switch viper.GetString("order") {
	case "max":
		return pmap.Greater[int](), nil
	case "min":
		return pmap.Less[int](), nil
	default:
		return nil, fmt.Errorf("invalid order %s (must be max or min)", viper.GetString("order"))
	}
}

// GetMapFactory creates a map factory based on the configured engine
func GetMapFactory() (func(cmp pmap.Compare[int]) pmap.Map[string, int], error) {
	switch viper.GetString("engine") {
	case string(pmap.ImplBucketList):
		return func(cmp pmap.Compare[int]) pmap.Map[string, int] {
			return bucketlist.New[string](&bucketlist.Options[int]{Compare: cmp})
		}, nil
	case string(pmap.ImplMapHeap):
		return func(cmp pmap.Compare[int]) pmap.Map[string, int] {
			return mapheap.New[string](&mapheap.Options[int]{Compare: cmp})
		}, nil
	default:
		return nil, fmt.Errorf("invalid engine %s", viper.GetString("engine"))
	}
}

// GetMap creates a map with the configured engine and ordering
func GetMap() (pmap.Map[string, int], error) {
	factory, err := GetMapFactory()
	if err != nil {
		return nil, err
	}
	cmp, err := GetComparator()
	if err != nil {
		return nil, err
	}
	return factory(cmp), nil
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
