package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaintenanceTips(t *testing.T) {
	tips := MaintenanceTips()
	assert.Len(t, tips, 5)
	for _, tip := range tips {
		assert.NotEmpty(t, tip)
	}
}

func TestMaintenanceTipsReturnsCopy(t *testing.T) {
	tips := MaintenanceTips()
	tips[0] = "mutated"
	assert.NotEqual(t, "mutated", MaintenanceTips()[0])
}

func TestBenefits(t *testing.T) {
	assert.NotEmpty(t, Benefits())
}

func TestDeskSetupTips(t *testing.T) {
	tips := DeskSetupTips()
	assert.Len(t, tips, 7)

	tips[0] = "mutated"
	assert.NotEqual(t, "mutated", DeskSetupTips()[0])
}
