package extract

import (
	"strings"
	"testing"
)

func TestExtract_RemovesNoiseKeepsContent(t *testing.T) {
	input := `<html><head><style>p{}</style><script>x()</script></head><body>
<ol class="breadcrumb"><li class="active">Hose Accessories</li></ol>
<div class="container start"><h1>Hoses</h1><img src="/h.jpg"><form><input></form></div>
<iframe src="https://video.example.com"></iframe>
</body></html>`

	got, err := New().Extract(input)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	for _, gone := range []string{"<script", "<style", "<form", "<iframe", "<input"} {
		if strings.Contains(got, gone) {
			t.Errorf("output still contains %s", gone)
		}
	}
	for _, kept := range []string{`<img src="/h.jpg"/>`, `class="breadcrumb"`, "<h1>Hoses</h1>"} {
		if !strings.Contains(got, kept) {
			t.Errorf("output lost %s", kept)
		}
	}
}

func TestExtract_ExtraSelectors(t *testing.T) {
	got, err := New(".promo").Extract(`<html><body><div class="promo">Sale!</div><p>Keep</p></body></html>`)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if strings.Contains(got, "Sale!") {
		t.Error("extra selector was not removed")
	}
	if !strings.Contains(got, "Keep") {
		t.Error("content was removed")
	}
}
