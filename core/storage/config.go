package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding evidence and reports.
	Bucket string `mapstructure:"bucket" default:"inventory"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PublicBaseURL prefixes object keys to build evidence URLs.
	// When empty, URLs are derived from Endpoint and Bucket.
	PublicBaseURL string `mapstructure:"public_base_url" default:""`
}

// ObjectURL returns the public URL of an object key in the configured bucket.
func (c Config) ObjectURL(objectKey string) string {
	base := c.PublicBaseURL
	if base == "" {
		scheme := "http://"
		if c.UseSSL {
			scheme = "https://"
		}
		base = scheme + trimScheme(c.Endpoint) + "/" + c.Bucket
	}
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/" + objectKey
}
