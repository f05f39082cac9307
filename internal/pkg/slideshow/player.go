package slideshow

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/trollfjell/imalink-web/app/models"
)

//go:embed player.html.tmpl
var playerFS embed.FS

var playerTmpl = template.Must(template.ParseFS(playerFS, "player.html.tmpl"))

// Slide is one entry of the player's slide array, serialized into the
// bundle's HTML. Photo slides reference the numbered image file inside
// the bundle; text slides carry their content inline.
type Slide struct {
	Type    string `json:"type"`
	Src     string `json:"src,omitempty"`
	Caption string `json:"caption,omitempty"`
	Title   string `json:"title,omitempty"`
	Body    string `json:"body,omitempty"`
}

// BuildSlides maps collection items to slides in order. Photo slides are
// numbered among photo items only, so text cards never shift the image
// filenames: the third photo is always images/photo-2.jpg regardless of
// how many text cards sit before it.
func BuildSlides(items []models.CollectionItem) []Slide {
	slides := make([]Slide, 0, len(items))
	photoIndex := 0
	for _, item := range items {
		switch item.Type {
		case models.ItemTypePhoto:
			slides = append(slides, Slide{
				Type:    "photo",
				Src:     fmt.Sprintf("images/photo-%d.jpg", photoIndex),
				Caption: item.Caption,
			})
			photoIndex++
		case models.ItemTypeText:
			slide := Slide{Type: "text"}
			if item.TextCard != nil {
				slide.Title = item.TextCard.Title
				slide.Body = item.TextCard.Body
			}
			slides = append(slides, slide)
		}
	}
	return slides
}

type playerData struct {
	Name          string
	Description   string
	PhotoCount    int
	PhotoWord     string
	TextCardCount int
	SlideCount    int
	QRDataURL     template.URL
	SlidesJSON    template.JS
}

// renderPlayer produces the self-contained index.html of the bundle.
func renderPlayer(name, description string, slides []Slide, qrDataURL string) ([]byte, error) {
	photoCount := 0
	textCardCount := 0
	for _, s := range slides {
		if s.Type == "photo" {
			photoCount++
		} else {
			textCardCount++
		}
	}

	slidesJSON, err := json.Marshal(slides)
	if err != nil {
		return nil, fmt.Errorf("encode slides: %w", err)
	}

	photoWord := "bilder"
	if photoCount == 1 {
		photoWord = "bilde"
	}

	var buf bytes.Buffer
	err = playerTmpl.Execute(&buf, playerData{
		Name:          name,
		Description:   description,
		PhotoCount:    photoCount,
		PhotoWord:     photoWord,
		TextCardCount: textCardCount,
		SlideCount:    len(slides),
		QRDataURL:     template.URL(qrDataURL),
		SlidesJSON:    template.JS(slidesJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("render player: %w", err)
	}
	return buf.Bytes(), nil
}
