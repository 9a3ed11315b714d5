package leveldb

type Config struct {
	Path       string `envconfig:"DIRECTORY" default:"bulk_transactions.ldb"`
	MaxHandles int    `envconfig:"MAX_HANDLES" default:"100"`
	SyncWrites bool   `envconfig:"SYNC_WRITES" default:"false"`
}
