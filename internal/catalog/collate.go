package catalog

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// The directory data is Turkish; plain byte comparison would misplace
// names starting with Ç, İ, Ö, Ş or Ü.
var collatorPool = sync.Pool{
	New: func() any {
		return collate.New(language.Turkish)
	},
}

// CompareLocale compares two strings with Turkish collation
func CompareLocale(a, b string) int {
	col := collatorPool.Get().(*collate.Collator)
	defer collatorPool.Put(col)
	return col.CompareString(a, b)
}

func sortLocaleAware(values []string) {
	col := collatorPool.Get().(*collate.Collator)
	defer collatorPool.Put(col)
	sort.SliceStable(values, func(i, j int) bool {
		return col.CompareString(values[i], values[j]) < 0
	})
}
