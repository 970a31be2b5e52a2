package dataset

// Config selects where dataset files are read from. When S3Bucket is set
// the files are read from S3, otherwise from Dir.
type Config struct {
	Dir            string `env:"DATASET_DIR" envDefault:"./data"`
	S3Bucket       string `env:"DATASET_S3_BUCKET"`
	S3Prefix       string `env:"DATASET_S3_PREFIX"`
	S3Region       string `env:"DATASET_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint     string `env:"DATASET_S3_ENDPOINT"`
	AccessKeyID    string `env:"DATASET_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"DATASET_S3_SECRET_KEY"`
	ForcePathStyle bool   `env:"DATASET_S3_FORCE_PATH_STYLE" envDefault:"false"`
}
