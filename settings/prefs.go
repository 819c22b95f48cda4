package settings

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
)

const xmlHeader = "<?xml version='1.0' encoding='utf-8' standalone='yes' ?>\n"

// prefsFile is the shared-preferences XML document:
//
//	<map>
//	    <int name="com.example_source" value="-1" />
//	    <set name="hooked_apps">
//	        <string>com.example</string>
//	    </set>
//	</map>
//
// Elements this package does not manage are kept verbatim.
type prefsFile struct {
	XMLName xml.Name    `xml:"map"`
	Ints    []prefInt   `xml:"int"`
	Sets    []prefSet   `xml:"set"`
	Other   []prefOther `xml:",any"`
}

type prefInt struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type prefSet struct {
	Name    string   `xml:"name,attr"`
	Strings []string `xml:"string"`
}

type prefOther struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   []byte     `xml:",innerxml"`
}

func parsePrefs(data []byte) (*prefsFile, error) {
	p := &prefsFile{}
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}
	if err := xml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("settings: parse preferences: %w", err)
	}
	return p, nil
}

func (p *prefsFile) marshal() ([]byte, error) {
	sort.Slice(p.Ints, func(i, j int) bool { return p.Ints[i].Name < p.Ints[j].Name })
	sort.Slice(p.Sets, func(i, j int) bool { return p.Sets[i].Name < p.Sets[j].Name })

	out, err := xml.MarshalIndent(p, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("settings: encode preferences: %w", err)
	}
	return append(append([]byte(xmlHeader), out...), '\n'), nil
}

// int32Value returns the named int, or false if it is absent or malformed.
func (p *prefsFile) int32Value(name string) (int32, bool) {
	for _, e := range p.Ints {
		if e.Name != name {
			continue
		}
		v, err := strconv.ParseInt(e.Value, 10, 32)
		if err != nil {
			return 0, false
		}
		return int32(v), true
	}
	return 0, false
}

func (p *prefsFile) setInt32(name string, v int32) {
	s := strconv.FormatInt(int64(v), 10)
	for i := range p.Ints {
		if p.Ints[i].Name == name {
			p.Ints[i].Value = s
			return
		}
	}
	p.Ints = append(p.Ints, prefInt{Name: name, Value: s})
}

func (p *prefsFile) removeInt(name string) bool {
	for i := range p.Ints {
		if p.Ints[i].Name == name {
			p.Ints = append(p.Ints[:i], p.Ints[i+1:]...)
			return true
		}
	}
	return false
}

func (p *prefsFile) stringSet(name string) []string {
	for _, s := range p.Sets {
		if s.Name == name {
			return append([]string(nil), s.Strings...)
		}
	}
	return nil
}

// addToSet adds v to the named set and reports whether it was missing.
func (p *prefsFile) addToSet(name, v string) bool {
	for i := range p.Sets {
		if p.Sets[i].Name != name {
			continue
		}
		for _, s := range p.Sets[i].Strings {
			if s == v {
				return false
			}
		}
		p.Sets[i].Strings = append(p.Sets[i].Strings, v)
		sort.Strings(p.Sets[i].Strings)
		return true
	}
	p.Sets = append(p.Sets, prefSet{Name: name, Strings: []string{v}})
	return true
}
