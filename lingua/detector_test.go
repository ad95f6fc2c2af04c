package lingua_test

import (
	"testing"

	"github.com/fwojciec/jobscan"
	"github.com/fwojciec/jobscan/lingua"
	"github.com/stretchr/testify/assert"
)

var _ jobscan.LanguageDetector = (*lingua.Detector)(nil)

func TestDetector_DetectLanguage(t *testing.T) {
	t.Parallel()

	d := lingua.NewDetector()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english",
			text: "We are looking for a DevOps engineer to join our remote team and help us build reliable infrastructure.",
			want: "en",
		},
		{
			name: "portuguese",
			text: "Estamos procurando uma pessoa engenheira DevOps para atuar em regime remoto e cuidar da nossa infraestrutura.",
			want: "pt",
		},
		{
			name: "spanish",
			text: "Buscamos un ingeniero DevOps para trabajar de forma remota y mantener nuestra infraestructura en la nube.",
			want: "es",
		},
		{
			name: "empty",
			text: "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, d.DetectLanguage(tt.text))
		})
	}
}
