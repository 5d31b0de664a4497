package bbs

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 9380 appendix K.6 vectors for expand_message_xof with SHAKE-256,
// k = 128, len_in_bytes = 0x20.
func TestExpandMessageXOFVectors(t *testing.T) {
	dst := []byte("QUUX-V01-CS02-with-expander-SHAKE256")

	tests := []struct {
		name string
		msg  string
		want string
	}{
		{
			name: "empty message",
			msg:  "",
			want: "2ffc05c48ed32b95d72e807f6eab9f7530dd1c2f013914c8fed38c5ccc15ad76",
		},
		{
			name: "abc",
			msg:  "abc",
			want: "b39e493867e2767216792abce1f2676c197c0692aed061560ead251821808e07",
		},
		{
			name: "abcdef0123456789",
			msg:  "abcdef0123456789",
			want: "245389cf44a13f0e70af8665fe5337ec2dcd138890bb7901c4ad9cfceb054b65",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := newXOFExpander()
			exp.update([]byte(tt.msg))
			out, err := exp.finalize(dst, 32)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(out))
		})
	}
}
