package notepage

import (
	"errors"
	"testing"
)

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{name: "nil is valid", page: nil},
		{name: "defaults", page: DefaultPageSettings()},
		{name: "a4 landscape", page: &PageSettings{Size: "A4", Orientation: "Landscape", Margin: 1}},
		{name: "unknown size", page: &PageSettings{Size: "tabloid", Orientation: OrientationPortrait, Margin: 1}, wantErr: ErrInvalidPageSize},
		{name: "unknown orientation", page: &PageSettings{Size: PageSizeLetter, Orientation: "diagonal", Margin: 1}, wantErr: ErrInvalidOrientation},
		{name: "margin too small", page: &PageSettings{Size: PageSizeLetter, Orientation: OrientationPortrait, Margin: 0.1}, wantErr: ErrInvalidMargin},
		{name: "margin too large", page: &PageSettings{Size: PageSizeLetter, Orientation: OrientationPortrait, Margin: 3.5}, wantErr: ErrInvalidMargin},
		{name: "margin at bounds", page: &PageSettings{Size: PageSizeLegal, Orientation: OrientationPortrait, Margin: MaxMargin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIcon_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		icon    *Icon
		wantErr bool
	}{
		{name: "nil is valid", icon: nil},
		{name: "url only", icon: &Icon{URL: "/favicon.ico"}},
		{name: "url and type", icon: &Icon{URL: "https://example.com/i.png", Type: "image/png"}},
		{name: "empty url", icon: &Icon{URL: "  "}, wantErr: true},
		{name: "whitespace in url", icon: &Icon{URL: "/my icon.png"}, wantErr: true},
		{name: "type without slash", icon: &Icon{URL: "/i.png", Type: "png"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.icon.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidIcon) {
				t.Errorf("Validate() error = %v, want ErrInvalidIcon", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestIconTypeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{url: "/favicon.ico", want: "image/x-icon"},
		{url: "icon.SVG", want: "image/svg+xml"},
		{url: "https://example.com/static/icon.png?v=3#x", want: "image/png"},
		{url: "icon.gif", want: "image/gif"},
		{url: "data:image/webp;base64,AAAA", want: "image/webp"},
		{url: "data:broken", want: ""},
		{url: "/favicon", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			if got := IconTypeFor(tt.url); got != tt.want {
				t.Errorf("IconTypeFor(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestIcon_MediaType(t *testing.T) {
	t.Parallel()

	if got := (&Icon{URL: "a.png", Type: "image/custom"}).MediaType(); got != "image/custom" {
		t.Errorf("MediaType() = %q, want explicit type", got)
	}
	if got := (&Icon{URL: "a.png"}).MediaType(); got != "image/png" {
		t.Errorf("MediaType() = %q, want guessed image/png", got)
	}
}
