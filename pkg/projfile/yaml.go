package projfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/scenekit/assetpack/pkg/types"
)

// sectionNames maps categories to their YAML section keys.
var sectionNames = map[types.Category]string{
	types.CategoryImage:     "images",
	types.CategorySound:     "sounds",
	types.CategoryFont:      "fonts",
	types.CategoryMovieClip: "movieclips",
	types.CategoryCacheFile: "caches",
	types.CategoryVolume:    "volumes",
	types.CategoryLibrary:   "libraries",
}

type yamlAsset struct {
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	Embedded bool   `yaml:"embedded,omitempty"`
	// Users is a pointer so an omitted field defaults to 1 instead of
	// reading as unused.
	Users *int `yaml:"users,omitempty"`
}

type yamlDoc struct {
	Name   string                 `yaml:"name"`
	Assets map[string][]yamlAsset `yaml:"assets"`
}

// yamlCodec reads and writes YAML project manifests.
type yamlCodec struct{}

func (yamlCodec) decode(data []byte) (string, assetTable, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", nil, err
	}

	assets := make(assetTable)
	for _, spec := range types.Categories {
		section := doc.Assets[sectionNames[spec.Category]]
		for _, a := range section {
			users := 1
			if a.Users != nil {
				users = *a.Users
			}
			assets[spec.Category] = append(assets[spec.Category], Asset{
				Name:     a.Name,
				Path:     a.Path,
				Embedded: a.Embedded,
				Users:    users,
			})
		}
	}

	// Reject sections that name no known category, otherwise a typo like
	// "image:" silently drops every entry.
	for key := range doc.Assets {
		if !knownSection(key) {
			return "", nil, fmt.Errorf("unknown asset section %q", key)
		}
	}

	return doc.Name, assets, nil
}

func (yamlCodec) encode(name string, assets assetTable) ([]byte, error) {
	doc := yamlDoc{Name: name, Assets: make(map[string][]yamlAsset)}
	for _, spec := range types.Categories {
		list := assets[spec.Category]
		if len(list) == 0 {
			continue
		}
		section := make([]yamlAsset, 0, len(list))
		for _, a := range list {
			users := a.Users
			section = append(section, yamlAsset{
				Name:     a.Name,
				Path:     a.Path,
				Embedded: a.Embedded,
				Users:    &users,
			})
		}
		doc.Assets[sectionNames[spec.Category]] = section
	}
	return yaml.Marshal(&doc)
}

func knownSection(key string) bool {
	for _, name := range sectionNames {
		if name == key {
			return true
		}
	}
	return false
}
