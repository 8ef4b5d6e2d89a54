package encode

type Config struct {
	Format Format
	Colors *Colors
}

type EncodeOption func(*Config)

func EncodeFormat(f Format) EncodeOption {
	return func(c *Config) { c.Format = f }
}

func EncodeColors(colors *Colors) EncodeOption {
	return func(c *Config) { c.Colors = colors }
}
