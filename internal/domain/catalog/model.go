// Package catalog holds the reference lists of administrative units and
// goods/service types offered to users when registering acquisitions.
package catalog

import (
	"encoding/xml"
	"fmt"
	"slices"
)

// Catalogs are two ordered lists of reference strings.
// They are advisory: acquisitions are not checked against them.
type Catalogs struct {
	AdministrativeUnits []string `json:"administrativeUnits"`
	GoodsServiceTypes   []string `json:"goodsServiceTypes"`
}

// Default returns the seed used when no persisted state exists.
func Default() Catalogs {
	return Catalogs{
		AdministrativeUnits: []string{
			"Dirección General",
			"Subdirección de Gestión Financiera",
			"Oficina Asesora Jurídica",
			"Oficina de Tecnologías de la Información",
			"Subdirección de Aseguramiento",
			"Subdirección de Operación de Reconocimientos",
			"Oficina de Planeación",
			"Oficina de Control Interno",
		},
		GoodsServiceTypes: []string{
			"Medicamentos",
			"Dispositivos médicos",
			"Equipos biomédicos",
			"Servicios de tecnología",
			"Servicios de consultoría",
			"Servicios de mantenimiento",
			"Papelería y suministros",
			"Servicios logísticos",
			"Licencias de software",
			"Servicios de capacitación",
		},
	}
}

// Clone returns a deep copy.
func (c Catalogs) Clone() Catalogs {
	return Catalogs{
		AdministrativeUnits: slices.Clone(c.AdministrativeUnits),
		GoodsServiceTypes:   slices.Clone(c.GoodsServiceTypes),
	}
}

// IsZero reports whether both lists are empty.
func (c Catalogs) IsZero() bool {
	return len(c.AdministrativeUnits) == 0 && len(c.GoodsServiceTypes) == 0
}

type catalogsXML struct {
	XMLName xml.Name `xml:"catalogs"`
	Units   []string `xml:"administrativeUnits>unit"`
	Types   []string `xml:"goodsServiceTypes>type"`
}

// XML renders the catalogs as an indented XML document with declaration.
func (c Catalogs) XML() ([]byte, error) {
	body, err := xml.MarshalIndent(catalogsXML{
		Units: c.AdministrativeUnits,
		Types: c.GoodsServiceTypes,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal catalogs xml: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
