package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialogsRender(t *testing.T) {
	confirm := ConfirmDialog("Delete client", "This cannot be undone.")
	assert.Contains(t, confirm, "Delete client")
	assert.Contains(t, confirm, "y: confirm")

	input := InputDialog("Order code", "4091")
	assert.Contains(t, input, "4091")

	info := InfoDialog("Pairing code", []string{"ABCD-1234"})
	assert.Contains(t, info, "ABCD-1234")
}
