package projfile

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/scenekit/assetpack/pkg/types"
)

// elementNames maps categories to their XML element tags.
var elementNames = map[types.Category]string{
	types.CategoryImage:     "image",
	types.CategorySound:     "sound",
	types.CategoryFont:      "font",
	types.CategoryMovieClip: "movieclip",
	types.CategoryCacheFile: "cachefile",
	types.CategoryVolume:    "volume",
	types.CategoryLibrary:   "library",
}

// xmlCodec reads and writes XML project files:
//
//	<project name="demo">
//	  <assets>
//	    <image name="brick" path="//textures/brick.png" users="2"/>
//	  </assets>
//	</project>
type xmlCodec struct{}

func (xmlCodec) decode(data []byte) (string, assetTable, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", nil, err
	}

	root := doc.SelectElement("project")
	if root == nil {
		return "", nil, fmt.Errorf("missing <project> root element")
	}
	name := root.SelectAttrValue("name", "")

	assets := make(assetTable)
	container := root.SelectElement("assets")
	if container == nil {
		return name, assets, nil
	}

	for _, el := range container.ChildElements() {
		cat, ok := categoryForElement(el.Tag)
		if !ok {
			return "", nil, fmt.Errorf("unknown asset element <%s>", el.Tag)
		}

		users := 1
		if v := el.SelectAttrValue("users", ""); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return "", nil, fmt.Errorf("invalid users attribute %q on <%s>", v, el.Tag)
			}
			users = n
		}

		assets[cat] = append(assets[cat], Asset{
			Name:     el.SelectAttrValue("name", ""),
			Path:     el.SelectAttrValue("path", ""),
			Embedded: el.SelectAttrValue("embedded", "false") == "true",
			Users:    users,
		})
	}

	return name, assets, nil
}

func (xmlCodec) encode(name string, assets assetTable) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("project")
	root.CreateAttr("name", name)
	container := root.CreateElement("assets")

	for _, spec := range types.Categories {
		for _, a := range assets[spec.Category] {
			el := container.CreateElement(elementNames[spec.Category])
			el.CreateAttr("name", a.Name)
			el.CreateAttr("path", a.Path)
			if a.Embedded {
				el.CreateAttr("embedded", "true")
			}
			el.CreateAttr("users", strconv.Itoa(a.Users))
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func categoryForElement(tag string) (types.Category, bool) {
	for cat, name := range elementNames {
		if name == tag {
			return cat, true
		}
	}
	return "", false
}
