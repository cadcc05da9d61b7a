package config

type CreaturesConfig struct {
	Creatures []CreatureDef `yaml:"creatures"`
}

type BossesConfig struct {
	Bosses []CreatureDef `yaml:"bosses"`
}

type CreatureDef struct {
	Name               string      `yaml:"name"`
	Biome              string      `yaml:"biome"`
	Terrain            string      `yaml:"terrain"`
	Size               string      `yaml:"size"` // "" or "1x1" or "2x2"
	MaxHP              int         `yaml:"max_hp"`
	Defense            int         `yaml:"defense"`
	Dodge              int         `yaml:"dodge"`
	Resistance         int         `yaml:"resistance"`
	ConversionEfficacy int         `yaml:"conversion_efficacy"`
	Attacks            []AttackDef `yaml:"attacks"`
	Abilities          []string    `yaml:"abilities"`
	BaseRequirement    int         `yaml:"base_requirement"` // 0 disables progression
	TierBonuses        []TierBonus `yaml:"tier_bonuses"`
	Note               string      `yaml:"note"`
}

type AttackDef struct {
	Type      string   `yaml:"type"` // melee | ranged | magic
	Damage    int      `yaml:"damage"`
	Range     string   `yaml:"range"` // "1-2" style, ranged only
	Abilities []string `yaml:"abilities"`
}

// TierBonus is one entry of a creature's tier table. Zero fields are
// simply not applied.
type TierBonus struct {
	Tier               int                 `yaml:"tier"`
	MaxHP              int                 `yaml:"max_hp"`
	Defense            int                 `yaml:"defense"`
	Dodge              int                 `yaml:"dodge"`
	Resistance         int                 `yaml:"resistance"`
	ConversionEfficacy int                 `yaml:"conversion_efficacy"`
	MeleeDamage        int                 `yaml:"melee_damage"`
	RangedDamage       int                 `yaml:"ranged_damage"`
	MagicDamage        int                 `yaml:"magic_damage"`
	NewAttack          *AttackDef          `yaml:"new_attack"`
	AttackAbilities    map[string][]string `yaml:"attack_abilities"` // attack type -> riders
	Abilities          []string            `yaml:"abilities"`
	HealingBonus       int                 `yaml:"healing_bonus"`
	Size               string              `yaml:"size"` // "2x2" grows the unit
	Note               string              `yaml:"note"`
}
