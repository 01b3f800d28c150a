package config

import "slices"

var (
	stylePeriods = []string{"baroque", "classical", "romantic", "modern"}

	crossComp5 = []string{"bach", "haydn", "beethoven", "brahms", "shostakovich"}

	crossComp11 = []string{
		"bach", "handel", "rameau", "haydn", "mozart", "beethoven",
		"schubert", "mendelssohn", "brahms", "dvorak", "shostakovich",
	}

	orchsetComposers = []string{
		"beethoven", "brahms", "dvorak", "grieg", "haydn", "holst",
		"musorgski", "prokofiev", "ravel", "rimski-korsakov", "schubert",
		"smetana", "strauss", "tchaikovsky", "wagner",
	}
)

func defaultDatasets() map[string]DatasetConfig {
	era := func(filter string) DatasetConfig {
		return DatasetConfig{TargetColumn: "style_period", Classes: slices.Clone(stylePeriods), FilterColumn: filter}
	}
	composers := func(classes []string, filter string) DatasetConfig {
		return DatasetConfig{TargetColumn: "composer", Classes: slices.Clone(classes), FilterColumn: filter}
	}

	return map[string]DatasetConfig{
		"crossera_piano":     era("Composer"),
		"crossera_orchestra": era("Composer"),
		"crossera_full":      era("Composer"),
		"crosscomp5":         composers(crossComp5, "Artist_filter_no"),
		"crosscomp11":        composers(crossComp11, "Artist_filter_no"),
		"orchsetera": {
			TargetColumn: "style_period",
			Classes:      []string{"classical", "romantic", "modern"},
		},
		"orchsetcomp": composers(orchsetComposers, ""),
	}
}
