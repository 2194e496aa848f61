package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleXML = `<?xml version="1.0" encoding="utf-8"?>
<instrumentationManifest xmlns="http://schemas.microsoft.com/win/2004/08/events">
  <instrumentation>
    <events>
      <provider name="Microsoft-Windows-DotNETRuntime" guid="{e13c0d23-ccbc-4e12-931b-d9cc2eee27e4}" symbol="MICROSOFT_WINDOWS_DOTNETRUNTIME_PROVIDER">
        <templates>
          <template tid="GCFinalizersEnd">
            <data name="Count" inType="win:UInt32" outType="xs:unsignedInt"/>
          </template>
          <template tid="BulkType">
            <data name="Count" inType="win:UInt32"/>
            <data name="ClrInstanceID" inType="win:UInt16"/>
            <struct name="Values" count="Count">
              <data name="TypeID" inType="win:UInt64"/>
              <data name="Flags" inType="win:UInt32"/>
            </struct>
          </template>
          <template tid="ModuleLoad">
            <data name="ModuleID" inType="win:UInt64"/>
            <data name="ManagedPdbSignature" inType="win:GUID"/>
            <data name="Signature" inType="win:Binary" length="16"/>
            <data name="ModuleILPath" inType="win:UnicodeString"/>
          </template>
        </templates>
        <events>
          <event value="13" symbol="GCFinalizersEnd" template="GCFinalizersEnd"/>
          <event value="15" symbol="BulkType" template="BulkType"/>
          <event value="16" symbol="GCHeapCollect"/>
        </events>
      </provider>
    </events>
  </instrumentation>
</instrumentationManifest>
`

func TestParseXML(t *testing.T) {
	m, err := ParseXML([]byte(sampleXML))
	require.NoError(t, err)
	require.Len(t, m.Providers, 1)

	p := m.Providers[0]
	assert.Equal(t, "Microsoft-Windows-DotNETRuntime", p.Name)
	assert.Equal(t, "e13c0d23-ccbc-4e12-931b-d9cc2eee27e4", p.GUID)
	require.Len(t, p.Templates, 3)
	require.Len(t, p.Events, 3)

	bulk, ok := p.Template("BulkType")
	require.True(t, ok)
	// Nested struct data must not leak into the template parameters.
	require.Len(t, bulk.Params, 3)
	assert.Equal(t, []string{"Count", "ClrInstanceID", "Values"}, paramNames(bulk))
	assert.Equal(t, map[string]string{"Values": "Count"}, bulk.Structs)
	assert.Empty(t, bulk.Arrays)

	values, _ := bulk.Param("Values")
	assert.Equal(t, Parameter{Name: "Values", Type: Struct, Count: Count, SizeProperty: "Count"}, values)

	load, _ := p.Template("ModuleLoad")
	guid, _ := load.Param("ManagedPdbSignature")
	assert.Equal(t, Count, guid.Count)
	assert.Equal(t, "sizeof(GUID)/sizeof(int)", guid.SizeProperty)

	sig, _ := load.Param("Signature")
	assert.Equal(t, Count, sig.Count)
	assert.Equal(t, "16", sig.SizeProperty)
	assert.False(t, load.IsArray("Signature"), "literal lengths do not make arrays")

	assert.Equal(t, "", p.Events[2].Template)
}

func TestParseYAML(t *testing.T) {
	src := `
providers:
  - name: Microsoft-Windows-DotNETRuntimePrivate
    templates:
      - name: Sample
        estimated_size: 200
        data:
          - name: ElementSize
            type: win:UInt32
          - name: Payload
            type: win:UInt8
            count: ElementSize
          - name: Single
            type: win:UInt32
            count: "1"
    events:
      - symbol: SampleEvent
        template: Sample
      - symbol: Bare
`
	m, err := ParseYAML([]byte(src))
	require.NoError(t, err)
	require.Len(t, m.Providers, 1)

	tmpl := m.Providers[0].Templates[0]
	assert.Equal(t, 200, tmpl.EstimatedSize)
	assert.Equal(t, map[string]string{"Payload": "ElementSize"}, tmpl.Arrays)

	single, _ := tmpl.Param("Single")
	assert.Equal(t, Null, single.Count, "a count of 1 is a scalar")
	assert.Empty(t, single.SizeProperty)

	assert.Equal(t, []*Event{{Symbol: "SampleEvent", Template: "Sample"}, {Symbol: "Bare"}}, m.Providers[0].Events)
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name: "unknown wire type",
			src: `
providers:
  - name: P
    templates:
      - name: T
        data:
          - {name: a, type: "win:HexInt128"}
`,
			wantErr: ErrUnknownWireType,
		},
		{
			name: "count and length",
			src: `
providers:
  - name: P
    templates:
      - name: T
        data:
          - {name: n, type: "win:UInt32"}
          - {name: a, type: "win:UInt8", count: n, length: n}
`,
			wantErr: ErrInvalidManifest,
		},
		{
			name: "dangling count",
			src: `
providers:
  - name: P
    templates:
      - name: T
        data:
          - {name: a, type: "win:UInt8", count: n}
`,
			wantErr: ErrInvalidManifest,
		},
		{
			name: "struct without count parameter",
			src: `
providers:
  - name: P
    templates:
      - name: T
        structs:
          - {name: s, count: Count}
`,
			wantErr: ErrInvalidManifest,
		},
		{
			name: "duplicate template",
			src: `
providers:
  - name: P
    templates:
      - name: T
      - name: T
`,
			wantErr: ErrInvalidManifest,
		},
		{
			name: "bad guid",
			src: `
providers:
  - name: P
    guid: not-a-guid
`,
			wantErr: ErrInvalidManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseYAML_Empty(t *testing.T) {
	m, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Providers)
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()

	xmlPath := filepath.Join(dir, "ClrEtwAll.man")
	require.NoError(t, os.WriteFile(xmlPath, []byte(sampleXML), 0644))
	m, err := Load(xmlPath)
	require.NoError(t, err)
	assert.Len(t, m.Providers, 1)

	txtPath := filepath.Join(dir, "events.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0644))
	_, err = Load(txtPath)
	assert.ErrorContains(t, err, "unsupported manifest format")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestEstimateSize(t *testing.T) {
	small := &Template{Params: []Parameter{{Name: "a", Type: UInt32}}}
	assert.Equal(t, 32, EstimateSize(small), "clamped to the minimum")

	mixed := &Template{
		Params: []Parameter{
			{Name: "a", Type: UInt64},
			{Name: "b", Type: UnicodeString},
			{Name: "n", Type: UInt32},
			{Name: "c", Type: UInt8, Count: Count, SizeProperty: "n"},
		},
		Arrays: map[string]string{"c": "n"},
	}
	assert.Equal(t, 8+32+4+64, EstimateSize(mixed))

	huge := &Template{}
	for i := 0; i < 40; i++ {
		huge.Params = append(huge.Params, Parameter{Name: string(rune('a' + i)), Type: AnsiString})
	}
	assert.Equal(t, 1024, EstimateSize(huge), "clamped to the maximum")
}

func TestWireTypes_RoundTrip(t *testing.T) {
	for _, w := range WireTypes() {
		got, err := ParseWireType(w.String())
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
	assert.True(t, Null.IsStructural())
	assert.True(t, Count.IsStructural())
	assert.False(t, Struct.IsStructural())
}

func paramNames(t *Template) []string {
	var names []string
	for _, p := range t.Params {
		names = append(names, p.Name)
	}
	return names
}
