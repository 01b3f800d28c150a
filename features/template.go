package features

import (
	"github.com/RyanBlaney/sonido-tonal/algorithms/tis"
	"github.com/RyanBlaney/sonido-tonal/dataset"
)

// Template is a set of pitch class offsets matched against a chroma frame
// in every transposition
type Template struct {
	Name      string
	Intervals []int
}

// Templates are the interval class and triad templates
var Templates = []Template{
	{IC1, []int{0, 1}},
	{IC2, []int{0, 2}},
	{IC3, []int{0, 3}},
	{IC4, []int{0, 4}},
	{IC5, []int{0, 5}},
	{IC6, []int{0, 6}},
	{ChordMaj, []int{0, 4, 7}},
	{ChordMin, []int{0, 3, 7}},
	{ChordDim, []int{0, 3, 6}},
	{ChordAug, []int{0, 4, 8}},
}

// TemplateBased computes the likelihood of every template per chroma frame
type TemplateBased struct{}

// Run returns the TemplateFeatures columns keyed like data
func (TemplateBased) Run(data *dataset.Table) (*dataset.Table, error) {
	feats := make([]namedFeature, len(Templates))
	for i, tmpl := range Templates {
		feats[i] = namedFeature{tmpl.Name, tmpl.Likelihood}
	}
	return extractFrames(data, feats)
}

// Likelihood sums, over the 12 transpositions q, the product of the chroma
// values at q + offset for every offset of the template
func (t Template) Likelihood(c tis.PCP) float64 {
	sum := 0.0
	for q := range tis.NumPitchClasses {
		product := 1.0
		for _, k := range t.Intervals {
			product *= c[(q+k)%tis.NumPitchClasses]
		}
		sum += product
	}
	return sum
}
