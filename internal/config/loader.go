package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

func LoadAll(dir string) (*CreaturesConfig, *BossesConfig, *HeroConfig, error) {
	var cc CreaturesConfig
	var bc BossesConfig
	var hc HeroConfig
	if err := loadYAML(filepath.Join(dir, "creatures.yaml"), &cc); err != nil {
		return nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "bosses.yaml"), &bc); err != nil {
		return nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "hero.yaml"), &hc); err != nil {
		return nil, nil, nil, err
	}
	normalize(&cc, &bc, &hc)
	return &cc, &bc, &hc, nil
}

func normalize(cc *CreaturesConfig, bc *BossesConfig, hc *HeroConfig) {
	for i := range cc.Creatures {
		normalizeCreature(&cc.Creatures[i])
	}
	for i := range bc.Bosses {
		normalizeCreature(&bc.Bosses[i])
	}
	if hc.MaxHP == 0 {
		hc.MaxHP = 100
	}
}

func normalizeCreature(c *CreatureDef) {
	if c.Size == "" {
		c.Size = "1x1"
	}
	for j := range c.Attacks {
		if c.Attacks[j].Type == "" {
			c.Attacks[j].Type = "melee"
		}
	}
}
