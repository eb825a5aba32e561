package security

import (
	"strings"
	"testing"

	"github.com/alchemorsel/menugen/internal/ports/inbound"
	"github.com/alchemorsel/menugen/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateStruct_GenerateMenuCommand(t *testing.T) {
	v := NewValidationService(zap.NewNop())

	cases := []struct {
		name    string
		cmd     inbound.GenerateMenuCommand
		wantErr string
	}{
		{name: "Empty_ShouldPass", cmd: inbound.GenerateMenuCommand{}},
		{name: "Bounds_ShouldPass", cmd: inbound.GenerateMenuCommand{Week: "2024-10", ServingSize: 10}},
		{name: "Upper_ShouldPass", cmd: inbound.GenerateMenuCommand{Week: "March 4", ServingSize: 100}},
		{name: "TooSmall", cmd: inbound.GenerateMenuCommand{ServingSize: 9}, wantErr: "serving_size must be at least 10"},
		{name: "TooLarge", cmd: inbound.GenerateMenuCommand{ServingSize: 101}, wantErr: "serving_size must be at most 100"},
		{name: "LongWeek", cmd: inbound.GenerateMenuCommand{Week: strings.Repeat("w", MaxWeekLabelLength+1)}, wantErr: "week must be at most 64 characters"},
		{name: "ControlChars", cmd: inbound.GenerateMenuCommand{Week: "2024\x00-10"}, wantErr: "week must contain printable characters only"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateStruct(tc.cmd)

			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeValidationFailed))
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSanitizeWeekLabel(t *testing.T) {
	v := NewValidationService(zap.NewNop())

	assert.Equal(t, "Week of March 4", v.SanitizeWeekLabel("  Week   of\tMarch 4 \n"))
	assert.Equal(t, "", v.SanitizeWeekLabel("   "))
}

func TestMustRegister(t *testing.T) {
	t.Run("ValidRule_ShouldRegister", func(t *testing.T) {
		assert.NotPanics(t, func() { NewValidationService(zap.NewNop()) })
	})

	t.Run("EmptyTag_ShouldPanic", func(t *testing.T) {
		assert.Panics(t, func() { mustRegister(validator.New(), "", validateWeekLabel) })
	})
}
