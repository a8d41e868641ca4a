// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package locales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ids     []string
		want    []string
		wantErr error
	}{
		{
			name: "keeps order and spelling",
			ids:  []string{"fr", "en_GB", "de"},
			want: []string{"fr", "en_GB", "de"},
		},
		{
			name: "empty set is valid",
			ids:  nil,
			want: []string{},
		},
		{
			name:    "exact duplicate",
			ids:     []string{"fr", "fr"},
			wantErr: ErrDuplicateLocale,
		},
		{
			name:    "duplicate after normalisation",
			ids:     []string{"en_GB", "en-GB"},
			wantErr: ErrDuplicateLocale,
		},
		{
			name:    "blank identifier",
			ids:     []string{"fr", " "},
			wantErr: ErrEmptyLocale,
		},
		{
			name:    "malformed identifier",
			ids:     []string{"not a locale"},
			wantErr: ErrInvalidLocale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewSet(tt.ids...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.IDs())
			assert.Equal(t, len(tt.want), got.Len())
		})
	}
}

func TestDefaultLocalesAreValid(t *testing.T) {
	t.Parallel()

	s, err := NewSet(DefaultLocales...)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultLocales), s.Len())
	assert.True(t, s.Contains("en_US"))
	assert.False(t, s.Contains("en-US"))
}

func TestSetIDsIsACopy(t *testing.T) {
	t.Parallel()

	s := MustNewSet("fr", "de")
	ids := s.IDs()
	ids[0] = "xx"

	assert.Equal(t, []string{"fr", "de"}, s.IDs())
}
