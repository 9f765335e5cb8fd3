package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractResumeText_PlainText(t *testing.T) {
	got, err := ExtractResumeText(mimePlain, []byte("Built a Go API for a campus club."))
	require.NoError(t, err)
	assert.Equal(t, "Built a Go API for a campus club.", got)
}

func TestExtractResumeText_UnsupportedType(t *testing.T) {
	_, err := ExtractResumeText("image/png", []byte{0x89, 0x50})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image/png")
}

func TestExtractResumeText_CorruptPDF(t *testing.T) {
	_, err := ExtractResumeText(mimePDF, []byte("not a pdf"))
	assert.Error(t, err)
}

func TestMimeFromKey(t *testing.T) {
	tests := map[string]string{
		"resumes/asha.pdf":  mimePDF,
		"resumes/ASHA.PDF":  mimePDF,
		"resumes/asha.docx": mimeDocx,
		"notes.txt":         mimePlain,
		"resumes/asha":      "",
		"resumes/asha.png":  "",
	}
	for key, want := range tests {
		assert.Equal(t, want, mimeFromKey(key), key)
	}
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "session.user-1", routingKey("user-1"))
	assert.Equal(t, "session.unidentified", routingKey(""))
}
