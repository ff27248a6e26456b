package ghs

import (
	"github.com/turtacn/ghscrunch/pkg/errors"
)

// HazardClass is one of the fixed hazard slots a ChemicalRecord carries.
type HazardClass string

const (
	Explosive    HazardClass = "explosive"
	FlammGas     HazardClass = "flamm_gas"
	FlammAer     HazardClass = "flamm_aer"
	OxidGas      HazardClass = "oxid_gas"
	GasPress     HazardClass = "gas_press"
	FlammLiq     HazardClass = "flamm_liq"
	FlammSol     HazardClass = "flamm_sol"
	SelfReact    HazardClass = "self_react"
	PyroLiq      HazardClass = "pyro_liq"
	PyroSol      HazardClass = "pyro_sol"
	SelfHeat     HazardClass = "self_heat"
	WaterFire    HazardClass = "water_fire"
	OxidLiq      HazardClass = "oxid_liq"
	OxidSol      HazardClass = "oxid_sol"
	OrgPerox     HazardClass = "org_perox"
	CorMetal     HazardClass = "cor_metal"
	AcuteOral    HazardClass = "acute_oral"
	AcuteDerm    HazardClass = "acute_derm"
	AcuteGas     HazardClass = "acute_gas"
	AcuteVap     HazardClass = "acute_vap"
	AcuteAir     HazardClass = "acute_air"
	SkinCor      HazardClass = "skin_cor"
	EyeDmg       HazardClass = "eye_dmg"
	RespSens     HazardClass = "resp_sens"
	SkinSens     HazardClass = "skin_sens"
	Mutagen      HazardClass = "mutagen"
	Cancer       HazardClass = "cancer"
	ReprTox      HazardClass = "repr_tox"
	SysSingle    HazardClass = "sys_single"
	SysRept      HazardClass = "sys_rept"
	AspHaz       HazardClass = "asp_haz"
	AquaticAcute HazardClass = "aq_acute"
	AquaticChron HazardClass = "aq_chronic"
)

// hazardClasses fixes the slot order used for output tables.
var hazardClasses = []HazardClass{
	Explosive, FlammGas, FlammAer, OxidGas, GasPress, FlammLiq, FlammSol,
	SelfReact, PyroLiq, PyroSol, SelfHeat, WaterFire, OxidLiq, OxidSol,
	OrgPerox, CorMetal,
	AcuteOral, AcuteDerm, AcuteGas, AcuteVap, AcuteAir, SkinCor, EyeDmg,
	RespSens, SkinSens, Mutagen, Cancer, ReprTox, SysSingle, SysRept, AspHaz,
	AquaticAcute, AquaticChron,
}

var hazardClassSet = func() map[HazardClass]int {
	m := make(map[HazardClass]int, len(hazardClasses))
	for i, c := range hazardClasses {
		m[c] = i
	}
	return m
}()

// HazardClasses returns every slot in output order. The slice is a copy.
func HazardClasses() []HazardClass {
	out := make([]HazardClass, len(hazardClasses))
	copy(out, hazardClasses)
	return out
}

// Valid reports whether c is one of the fixed slots.
func (c HazardClass) Valid() bool {
	_, ok := hazardClassSet[c]
	return ok
}

// Index returns the output position of c, or -1.
func (c HazardClass) Index() int {
	if i, ok := hazardClassSet[c]; ok {
		return i
	}
	return -1
}

func (c HazardClass) String() string {
	return string(c)
}

// ParseHazardClass validates s as a slot key.
func ParseHazardClass(s string) (HazardClass, error) {
	c := HazardClass(s)
	if !c.Valid() {
		return "", errUnknownClass(c)
	}
	return c, nil
}

func errUnknownClass(c HazardClass) error {
	return errors.New(errors.CodeUnknownHazardClass, "unknown hazard class").
		WithDetailf("class=%q", string(c))
}
