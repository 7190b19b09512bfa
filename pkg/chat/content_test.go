package chat

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"rgpt-backend/internal/constant"
	"rgpt-backend/internal/pkg/apperror"
	"rgpt-backend/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	mime, err := DecodeImage(pngBytes(t))
	assert.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	_, err = DecodeImage([]byte("definitely not an image"))
	assert.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindDecode))
}

func TestAssembleTextOnly(t *testing.T) {
	assembler := NewContentAssembler(logger.NewNopLogger())

	turn, err := assembler.Assemble("hello world", nil)
	assert.NoError(t, err)
	assert.Equal(t, constant.ChatMessageRoleUser, turn.Role)
	require.Len(t, turn.Parts, 1)
	assert.Equal(t, "hello world", turn.Parts[0].Text)
	assert.False(t, turn.HasImage())
}

func TestAssembleTextAndImage(t *testing.T) {
	assembler := NewContentAssembler(logger.NewNopLogger())

	turn, err := assembler.Assemble("what is in this picture?", pngBytes(t))
	assert.NoError(t, err)
	require.Len(t, turn.Parts, 2)
	assert.True(t, turn.HasImage())
	assert.Equal(t, "image/png", turn.Parts[1].ImageMIME)
}

func TestAssembleDropsUndecodableUpload(t *testing.T) {
	assembler := NewContentAssembler(logger.NewNopLogger())

	// Text carries the turn; the broken upload is dropped, not fatal.
	turn, err := assembler.Assemble("describe this", []byte{0x00, 0x01, 0x02})
	assert.NoError(t, err)
	require.Len(t, turn.Parts, 1)
	assert.False(t, turn.HasImage())
}

func TestAssembleNothingLeft(t *testing.T) {
	assembler := NewContentAssembler(logger.NewNopLogger())

	tests := []struct {
		name   string
		text   string
		upload []byte
	}{
		{name: "no text no upload", text: "", upload: nil},
		{name: "no text broken upload", text: "", upload: []byte("junk")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := assembler.Assemble(tt.text, tt.upload)
			assert.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		})
	}
}
