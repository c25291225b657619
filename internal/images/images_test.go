// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package images

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(payload)

	t.Run("valid", func(t *testing.T) {
		ct, data, err := ParseDataURL("data:image/png;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, "image/png", ct)
		assert.Equal(t, payload, data)
	})

	t.Run("missing prefix", func(t *testing.T) {
		_, _, err := ParseDataURL("image/png;base64," + encoded)
		assert.ErrorIs(t, err, ErrInvalidDataURL)
	})

	t.Run("missing content type", func(t *testing.T) {
		_, _, err := ParseDataURL("data:image/png," + encoded)
		assert.ErrorIs(t, err, ErrInvalidDataURL)
	})

	t.Run("non-image content type", func(t *testing.T) {
		_, _, err := ParseDataURL("data:text/html;base64," + encoded)
		assert.ErrorIs(t, err, ErrInvalidDataURL)
	})

	t.Run("not base64 encoded", func(t *testing.T) {
		_, _, err := ParseDataURL("data:image/png;utf8,hello")
		assert.ErrorIs(t, err, ErrInvalidDataURL)
	})

	t.Run("invalid base64 payload", func(t *testing.T) {
		_, _, err := ParseDataURL("data:image/png;base64,!!!!")
		assert.ErrorIs(t, err, ErrInvalidDataURL)
	})
}
