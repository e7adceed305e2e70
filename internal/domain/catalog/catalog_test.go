package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_EmptySeedsDefaults(t *testing.T) {
	s := NewStore(Catalogs{})
	got := s.Get()

	require.Len(t, got.AdministrativeUnits, 8)
	require.Len(t, got.GoodsServiceTypes, 10)
	assert.Equal(t, "Dirección General", got.AdministrativeUnits[0])
	assert.Equal(t, "Medicamentos", got.GoodsServiceTypes[0])
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore(Catalogs{AdministrativeUnits: []string{"A"}, GoodsServiceTypes: []string{"B"}})

	got := s.Get()
	got.AdministrativeUnits[0] = "mutated"

	assert.Equal(t, []string{"A"}, s.Get().AdministrativeUnits)
}

func TestCatalogs_XML(t *testing.T) {
	c := Catalogs{
		AdministrativeUnits: []string{"R&D <lab>"},
		GoodsServiceTypes:   []string{"Papelería"},
	}

	out, err := c.XML()
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, doc, "<unit>R&amp;D &lt;lab&gt;</unit>")
	assert.Contains(t, doc, "<goodsServiceTypes>")
	assert.Contains(t, doc, "<type>Papelería</type>")
}
