package manifest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a manifest file. The format is chosen from the extension:
// .yaml/.yml for YAML manifests, .xml/.man for ETW instrumentation manifests.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".xml", ".man":
		return ParseXML(data)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q (allowed: .yaml, .yml, .xml, .man)", filepath.Ext(path))
	}
}

// yamlManifest is the on-disk layout of a YAML manifest.
type yamlManifest struct {
	Providers []struct {
		Name      string `yaml:"name"`
		GUID      string `yaml:"guid"`
		Templates []struct {
			Name          string `yaml:"name"`
			EstimatedSize int    `yaml:"estimated_size"`
			Data          []struct {
				Name   string `yaml:"name"`
				Type   string `yaml:"type"`
				Count  string `yaml:"count"`
				Length string `yaml:"length"`
			} `yaml:"data"`
			Structs []struct {
				Name  string `yaml:"name"`
				Count string `yaml:"count"`
			} `yaml:"structs"`
		} `yaml:"templates"`
		Events []struct {
			Symbol   string `yaml:"symbol"`
			Template string `yaml:"template"`
		} `yaml:"events"`
	} `yaml:"providers"`
}

// ParseYAML decodes a YAML manifest.
func ParseYAML(data []byte) (*Manifest, error) {
	var ym yamlManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ym); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	m := &Manifest{}
	for _, yp := range ym.Providers {
		rp := rawProvider{Name: yp.Name, GUID: yp.GUID}
		for _, yt := range yp.Templates {
			rt := rawTemplate{Name: yt.Name, EstimatedSize: yt.EstimatedSize}
			for _, d := range yt.Data {
				rt.Data = append(rt.Data, rawData{Name: d.Name, InType: d.Type, Count: d.Count, Length: d.Length})
			}
			for _, s := range yt.Structs {
				rt.Structs = append(rt.Structs, rawStruct{Name: s.Name, Count: s.Count})
			}
			rp.Templates = append(rp.Templates, rt)
		}
		for _, e := range yp.Events {
			rp.Events = append(rp.Events, rawEvent{Symbol: e.Symbol, Template: e.Template})
		}

		p, err := buildProvider(rp)
		if err != nil {
			return nil, err
		}
		m.Providers = append(m.Providers, p)
	}
	return m, nil
}

// xmlManifest covers the subset of an ETW instrumentation manifest the
// generator consumes. Only direct children are matched, so data elements
// nested in a struct are not mistaken for template parameters.
type xmlManifest struct {
	XMLName   xml.Name      `xml:"instrumentationManifest"`
	Providers []xmlProvider `xml:"instrumentation>events>provider"`
}

type xmlProvider struct {
	Name      string        `xml:"name,attr"`
	GUID      string        `xml:"guid,attr"`
	Templates []xmlTemplate `xml:"templates>template"`
	Events    []xmlEvent    `xml:"events>event"`
}

type xmlTemplate struct {
	TID     string      `xml:"tid,attr"`
	Data    []xmlData   `xml:"data"`
	Structs []xmlStruct `xml:"struct"`
}

type xmlData struct {
	Name   string `xml:"name,attr"`
	InType string `xml:"inType,attr"`
	Count  string `xml:"count,attr"`
	Length string `xml:"length,attr"`
}

type xmlStruct struct {
	Name  string `xml:"name,attr"`
	Count string `xml:"count,attr"`
}

type xmlEvent struct {
	Symbol   string `xml:"symbol,attr"`
	Template string `xml:"template,attr"`
}

// ParseXML decodes an ETW instrumentation manifest.
func ParseXML(data []byte) (*Manifest, error) {
	var xm xmlManifest
	if err := xml.Unmarshal(data, &xm); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	m := &Manifest{}
	for _, xp := range xm.Providers {
		rp := rawProvider{Name: xp.Name, GUID: xp.GUID}
		for _, xt := range xp.Templates {
			rt := rawTemplate{Name: xt.TID}
			for _, d := range xt.Data {
				rt.Data = append(rt.Data, rawData(d))
			}
			for _, s := range xt.Structs {
				rt.Structs = append(rt.Structs, rawStruct(s))
			}
			rp.Templates = append(rp.Templates, rt)
		}
		for _, e := range xp.Events {
			rp.Events = append(rp.Events, rawEvent(e))
		}

		p, err := buildProvider(rp)
		if err != nil {
			return nil, err
		}
		m.Providers = append(m.Providers, p)
	}
	return m, nil
}
