package domain

// CharacteristicType es la categoría de una amenity (Cuisine, Sécurité, ...)
type CharacteristicType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconPath    string `json:"iconPath,omitempty"`
}

// Characteristic es una amenity del catálogo
type Characteristic struct {
	ID                    int64               `json:"id"`
	Name                  string              `json:"name"`
	IconPath              string              `json:"iconPath,omitempty"`
	IsActive              bool                `json:"isActive"`
	TypeCaracteristiqueID int64               `json:"typeCaracteristique_id,omitempty"`
	TypeCaracteristique   *CharacteristicType `json:"typeCaracteristique,omitempty"`
}

// CharacteristicGroup agrupa amenities activas bajo el nombre de su tipo
type CharacteristicGroup struct {
	Name  string           `json:"name"`
	Items []Characteristic `json:"items"`
}

const OtherGroup = "Other"

// GroupCharacteristics agrupa por nombre de tipo.
// El tipo se toma del objeto embebido y si no está, del id contra el catálogo de tipos.
// Solo entran las activas, los grupos vacíos se descartan y "Other" va al final.
func GroupCharacteristics(chars []Characteristic, types []CharacteristicType) []CharacteristicGroup {
	typeNames := make(map[int64]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}

	groups := make(map[string][]Characteristic)
	var order []string
	for _, t := range types {
		if _, seen := groups[t.Name]; !seen {
			groups[t.Name] = nil
			order = append(order, t.Name)
		}
	}

	for _, c := range chars {
		if !c.IsActive {
			continue
		}
		name := OtherGroup
		switch {
		case c.TypeCaracteristique != nil && c.TypeCaracteristique.Name != "":
			name = c.TypeCaracteristique.Name
		case typeNames[c.TypeCaracteristiqueID] != "":
			name = typeNames[c.TypeCaracteristiqueID]
		}
		if _, seen := groups[name]; !seen && name != OtherGroup {
			order = append(order, name)
		}
		groups[name] = append(groups[name], c)
	}

	var out []CharacteristicGroup
	for _, name := range order {
		if name == OtherGroup {
			continue
		}
		if items := groups[name]; len(items) > 0 {
			out = append(out, CharacteristicGroup{Name: name, Items: items})
		}
	}
	if items := groups[OtherGroup]; len(items) > 0 {
		out = append(out, CharacteristicGroup{Name: OtherGroup, Items: items})
	}
	return out
}
