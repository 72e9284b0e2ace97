package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tbl := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "session", want: ModeSession},
		{in: "cookie", want: ModeCookie},
		{in: "Cookie", want: ModeCookie},
		{in: "", wantErr: true},
		{in: "token", wantErr: true},
	}
	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "session", ModeSession.String())
	assert.Equal(t, "cookie", ModeCookie.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
}
