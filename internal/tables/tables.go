// Package tables holds the static weapon and armor data every fight reads.
// The tables are parsed once from embedded pipe-delimited CSV at init and
// never mutated afterwards, so they are safe to share across any number of
// concurrent fights without synchronization.
package tables

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

//go:embed data/weapons.csv data/armors.csv
var dataFS embed.FS

var (
	ErrUnknownWeapon = errors.New("unknown weapon id")
	ErrUnknownArmor  = errors.New("unknown armor id")
)

// WeaponClass groups weapons that weight the same probability/damage subset.
type WeaponClass string

const (
	ClassLightFinesse    WeaponClass = "light-finesse"
	ClassHeavyDemolition WeaponClass = "heavy-demolition"
	ClassPureBlunt       WeaponClass = "pure-blunt"
	ClassReachControl    WeaponClass = "reach-control"
	ClassDualWieldBrute  WeaponClass = "dual-wield-brute"
)

// ArmorType groups armors for specialization matching.
type ArmorType string

const (
	ArmorUnarmored ArmorType = "unarmored"
	ArmorLight     ArmorType = "light"
	ArmorMedium    ArmorType = "medium"
	ArmorHeavy     ArmorType = "heavy"
)

type Weapon struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Class       WeaponClass `json:"class"`
	DamageMin   int         `json:"damage_min"`
	DamageMax   int         `json:"damage_max"`
	Speed       int         `json:"speed"`
	StaminaCost int         `json:"stamina_cost"`
}

type Armor struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            ArmorType `json:"type"`
	Defense         int       `json:"defense"`
	MobilityPenalty int       `json:"mobility_penalty"`
}

var (
	weaponsByID map[string]Weapon
	armorsByID  map[string]Armor
	weaponsList []Weapon
	armorsList  []Armor
)

func readPipeCSV(name string) [][]string {
	f, err := dataFS.Open(name)
	if err != nil {
		panic(fmt.Sprintf("tables: open %s: %v", name, err))
	}
	defer f.Close()
	csvr := csv.NewReader(f)
	csvr.Comma = '|'
	csvr.FieldsPerRecord = -1
	rows, err := csvr.ReadAll()
	if err != nil {
		panic(fmt.Sprintf("tables: parse %s: %v", name, err))
	}
	return rows
}

func mustInt(s, ctx string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("tables: bad integer %q in %s", s, ctx))
	}
	return n
}

func init() {
	weaponsByID = map[string]Weapon{}
	for i, r := range readPipeCSV("data/weapons.csv") {
		if i == 0 {
			continue // header
		}
		if len(r) < 7 {
			panic(fmt.Sprintf("tables: short weapon row %d", i))
		}
		w := Weapon{
			ID:          r[0],
			Name:        r[1],
			Class:       WeaponClass(r[2]),
			DamageMin:   mustInt(r[3], "weapons.csv"),
			DamageMax:   mustInt(r[4], "weapons.csv"),
			Speed:       mustInt(r[5], "weapons.csv"),
			StaminaCost: mustInt(r[6], "weapons.csv"),
		}
		weaponsByID[w.ID] = w
		weaponsList = append(weaponsList, w)
	}
	armorsByID = map[string]Armor{}
	for i, r := range readPipeCSV("data/armors.csv") {
		if i == 0 {
			continue
		}
		if len(r) < 5 {
			panic(fmt.Sprintf("tables: short armor row %d", i))
		}
		a := Armor{
			ID:              r[0],
			Name:            r[1],
			Type:            ArmorType(r[2]),
			Defense:         mustInt(r[3], "armors.csv"),
			MobilityPenalty: mustInt(r[4], "armors.csv"),
		}
		armorsByID[a.ID] = a
		armorsList = append(armorsList, a)
	}
	sort.Slice(weaponsList, func(i, j int) bool { return weaponsList[i].ID < weaponsList[j].ID })
	sort.Slice(armorsList, func(i, j int) bool { return armorsList[i].ID < armorsList[j].ID })
}

// WeaponByID resolves a weapon selector. Unknown ids are an integration
// error surfaced immediately.
func WeaponByID(id string) (Weapon, error) {
	w, ok := weaponsByID[id]
	if !ok {
		return Weapon{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, id)
	}
	return w, nil
}

// ArmorByID resolves an armor selector.
func ArmorByID(id string) (Armor, error) {
	a, ok := armorsByID[id]
	if !ok {
		return Armor{}, fmt.Errorf("%w: %q", ErrUnknownArmor, id)
	}
	return a, nil
}

// Weapons returns all weapons sorted by id. The slice is a copy.
func Weapons() []Weapon {
	out := make([]Weapon, len(weaponsList))
	copy(out, weaponsList)
	return out
}

// Armors returns all armors sorted by id. The slice is a copy.
func Armors() []Armor {
	out := make([]Armor, len(armorsList))
	copy(out, armorsList)
	return out
}
