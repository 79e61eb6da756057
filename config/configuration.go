package config

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreSQL    = "sql"
)

type Configuration struct {
	HttpAddr        string `usage:"HTTP address"`
	Resource        string `usage:"resource path the items are served under"`
	Statics         string `usage:"statics directory, empty serves the embedded front-end"`
	Store           string `usage:"record store: memory, mongo or sql"`
	MongoURI        string `usage:"MongoDB connection string"`
	MongoDatabase   string `usage:"MongoDB database name"`
	MongoCollection string `usage:"MongoDB collection name"`
	SQLDialect      string `usage:"SQL dialect: sqlite or postgres"`
	SQLDSN          string `usage:"SQL data source name"`
	RedisAddr       string `usage:"Redis address, empty disables the cache"`
	RedisPassword   string `usage:"Redis password"`
	RedisDB         int    `usage:"Redis database number"`
	CacheTTLSeconds int    `usage:"cached item lifetime in seconds"`
	ShowConfig      bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr:        ":3000",
		Resource:        "items",
		Store:           StoreMemory,
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "testdb",
		MongoCollection: "items",
		SQLDialect:      "sqlite",
		SQLDSN:          "items.db",
		CacheTTLSeconds: 300,
	}
}
