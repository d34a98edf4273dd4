package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"mediavault/internal/domain/entity"
)

//go:embed default.yaml
var defaultSeed []byte

// File is the on-disk seed format. Assets name their collection instead of
// referencing an id, since ids are generated when the seed is built.
type File struct {
	Tags        []string         `yaml:"tags"`
	Collections []CollectionSeed `yaml:"collections"`
	Assets      []AssetSeed      `yaml:"assets"`
}

type CollectionSeed struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	CreatedAt   time.Time `yaml:"createdAt"`
}

type AssetSeed struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Tags        []string          `yaml:"tags"`
	Collection  string            `yaml:"collection"`
	FileName    string            `yaml:"fileName"`
	FileSize    int64             `yaml:"fileSize"`
	Dimensions  entity.Dimensions `yaml:"dimensions"`
	Format      string            `yaml:"format"`
	ImageURL    string            `yaml:"imageUrl"`
	Copyright   string            `yaml:"copyright"`
	UsageRights string            `yaml:"usageRights"`
	AgeDays     int               `yaml:"ageDays"`
}

// Default returns the embedded seed.
func Default() (*File, error) {
	return Parse(defaultSeed)
}

// Load reads a seed from path, or the embedded default when path is empty.
func Load(path string) (*File, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Build turns the seed into a catalog document. Upload dates are ageDays
// before now; the n-th asset gets fileName image-n.jpg, 1920x1080 and JPEG
// unless the seed says otherwise.
func (f *File) Build(now time.Time) (*entity.CatalogDocument, error) {
	doc := &entity.CatalogDocument{
		Assets:      make([]entity.Asset, 0, len(f.Assets)),
		Collections: make([]entity.Collection, 0, len(f.Collections)),
		Tags:        make([]entity.Tag, 0, len(f.Tags)),
	}

	for _, name := range f.Tags {
		doc.Tags = append(doc.Tags, entity.Tag{ID: uuid.NewString(), Name: name})
	}

	byName := make(map[string]string, len(f.Collections))
	for _, c := range f.Collections {
		if _, dup := byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate collection %q in seed", c.Name)
		}
		id := uuid.NewString()
		byName[c.Name] = id
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		doc.Collections = append(doc.Collections, entity.Collection{
			ID:          id,
			Name:        c.Name,
			Description: c.Description,
			CreatedAt:   createdAt.UTC(),
		})
	}

	for i, s := range f.Assets {
		draft := entity.AssetDraft{
			Title:       s.Title,
			Description: s.Description,
			Tags:        s.Tags,
			FileName:    s.FileName,
			FileSize:    s.FileSize,
			Dimensions:  s.Dimensions,
			Format:      s.Format,
			ImageURL:    s.ImageURL,
			Copyright:   s.Copyright,
			UsageRights: s.UsageRights,
		}
		if draft.FileName == "" {
			draft.FileName = fmt.Sprintf("image-%d.jpg", i+1)
		}
		if draft.Dimensions == (entity.Dimensions{}) {
			draft.Dimensions = entity.Dimensions{Width: 1920, Height: 1080}
		}
		if draft.Format == "" {
			draft.Format = "JPEG"
		}
		if s.Collection != "" {
			id, ok := byName[s.Collection]
			if !ok {
				return nil, fmt.Errorf("asset %q references unknown collection %q", s.Title, s.Collection)
			}
			draft.CollectionID = &id
		}

		a := entity.NewAsset(uuid.NewString(), draft, now)
		a.UploadDate = now.AddDate(0, 0, -s.AgeDays)
		doc.Assets = append(doc.Assets, a)
	}

	doc.Normalize()
	return doc, nil
}
