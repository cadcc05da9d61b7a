package config

type HeroConfig struct {
	Name         string `yaml:"name"`
	MaxHP        int    `yaml:"max_hp"`
	Intelligence int    `yaml:"intelligence"`
	Wisdom       int    `yaml:"wisdom"`
	Charisma     int    `yaml:"charisma"`
	Battle       int    `yaml:"battle"`
	Note         string `yaml:"note"`
}
