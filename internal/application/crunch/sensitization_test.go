package crunch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSensitization(t *testing.T) {
	resp, skin := splitSensitization([]string{
		"Respiratory sensitizer: Category 1;\nSkin sensitizer: Category 1",
		"(Respiratory sensitizer)-\n(Skin sensitizer)-",
		"Not classified \n",
		"",
	})

	assert.Equal(t, []string{
		"Respiratory sensitizer: Category 1",
		"(Respiratory sensitizer)-",
		"Not classified",
		"",
	}, resp)
	assert.Equal(t, []string{
		"Skin sensitizer: Category 1",
		"Skin sensitizer)-",
		"Not classified",
		"",
	}, skin)
}
