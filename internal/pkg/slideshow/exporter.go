// Package slideshow builds offline slideshow bundles: a zip archive with
// a self-contained HTML player and the full-size images of a collection,
// playable from a local file with no server and no network.
package slideshow

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"

	"github.com/trollfjell/imalink-web/app/models"
	"github.com/trollfjell/imalink-web/internal/pkg/collection"
)

// PreviewWidth is the cold preview size requested for export. Large
// enough for TV playback, small enough to keep bundles manageable.
const PreviewWidth = 2000

// MediaFetcher downloads image bytes for a photo. *imalink.Client
// satisfies it.
type MediaFetcher interface {
	FetchColdPreview(ctx context.Context, hothash string, maxWidth int) ([]byte, error)
}

// Options describes one export.
type Options struct {
	CollectionID uint
	Name         string
	Description  string
	Items        []models.CollectionItem
}

// Failure records a photo that could not be included in the bundle.
type Failure struct {
	Hothash string
	Err     error
}

// Report summarizes an export. Failed photo downloads do not abort the
// export; the bundle ships without those images and the report says so.
type Report struct {
	SlideCount    int
	PhotoCount    int
	TextCardCount int
	Fetched       int
	Failures      []Failure
}

// Exporter builds slideshow bundles. baseURL is the public site root the
// QR code points back to.
type Exporter struct {
	fetcher MediaFetcher
	baseURL string
}

// NewExporter creates an exporter over the given media source.
func NewExporter(fetcher MediaFetcher, baseURL string) *Exporter {
	return &Exporter{fetcher: fetcher, baseURL: baseURL}
}

// Export builds the zip bundle for a collection. Hidden items are left
// out entirely; the bundle mirrors what a viewer of the collection sees.
// Photo downloads run in parallel and are keyed by their precomputed
// photo index, so a failed download never shifts the filenames of the
// photos that follow it.
func (e *Exporter) Export(ctx context.Context, opts Options) ([]byte, *Report, error) {
	items := collection.VisibleItems(opts.Items)
	slides := BuildSlides(items)

	report := &Report{SlideCount: len(slides)}
	for _, s := range slides {
		if s.Type == "photo" {
			report.PhotoCount++
		} else {
			report.TextCardCount++
		}
	}

	images := e.fetchPhotos(ctx, items, report)

	qr, err := qrDataURL(fmt.Sprintf("%s/collections/%d", e.baseURL, opts.CollectionID))
	if err != nil {
		return nil, report, err
	}

	html, err := renderPlayer(opts.Name, opts.Description, slides, qr)
	if err != nil {
		return nil, report, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("index.html")
	if err != nil {
		return nil, report, fmt.Errorf("create bundle entry: %w", err)
	}
	if _, err = w.Write(html); err != nil {
		return nil, report, fmt.Errorf("write bundle entry: %w", err)
	}

	for index, data := range images {
		w, err = zw.Create(fmt.Sprintf("images/photo-%d.jpg", index))
		if err != nil {
			return nil, report, fmt.Errorf("create bundle entry: %w", err)
		}
		if _, err = w.Write(data); err != nil {
			return nil, report, fmt.Errorf("write bundle entry: %w", err)
		}
	}

	if err = zw.Close(); err != nil {
		return nil, report, fmt.Errorf("finalize bundle: %w", err)
	}

	log.Infof("[Slideshow] exported collection %d: %d slides, %d of %d photos",
		opts.CollectionID, report.SlideCount, report.Fetched, report.PhotoCount)
	return buf.Bytes(), report, nil
}

// fetchPhotos downloads all photo previews in parallel. The result map
// is keyed by photo index; a missing key means that download failed.
func (e *Exporter) fetchPhotos(ctx context.Context, items []models.CollectionItem, report *Report) map[int][]byte {
	type job struct {
		index   int
		hothash string
	}

	var jobs []job
	photoIndex := 0
	for _, item := range items {
		if item.Type == models.ItemTypePhoto {
			jobs = append(jobs, job{index: photoIndex, hothash: item.PhotoHothash})
			photoIndex++
		}
	}

	images := make(map[int][]byte, len(jobs))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			data, err := e.fetcher.FetchColdPreview(ctx, j.hothash, PreviewWidth)
			if err == nil {
				data, err = toJPEG(data)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warnf("[Slideshow] photo %s skipped: %v", j.hothash, err)
				report.Failures = append(report.Failures, Failure{Hothash: j.hothash, Err: err})
				return
			}
			images[j.index] = data
			report.Fetched++
		}(j)
	}
	wg.Wait()
	return images
}

// toJPEG passes JPEG bytes through untouched and re-encodes anything
// else, so every bundled image matches its .jpg name.
func toJPEG(data []byte) ([]byte, error) {
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8 {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpeg.DefaultQuality)); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
