package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collections MongoDB
const (
	CollOrders       = "orders"
	CollUsers        = "users"
	CollUniversities = "universities"
	CollCampuses     = "campuses"
	CollRestaurants  = "restaurants"
	CollMenuItems    = "menuItems"
	CollMartItems    = "martItems"
	CollSettings     = "campusSettings"
	CollLogs         = "logs"
)

// Databases regroupe les connexions ouvertes au démarrage.
// Le handle est passé explicitement aux handlers : une seule connexion
// physique, pas d'état global caché.
type Databases struct {
	Mongo   *mongo.Database
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
}

// Connect ouvre toutes les connexions. MongoDB et Redis sont obligatoires,
// Elasticsearch et MinIO sont optionnels (les features associées se désactivent).
func Connect() *Databases {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := &Databases{
		Mongo:   connectMongo(ctx),
		Redis:   connectRedis(ctx),
		Elastic: connectElastic(),
		MinIO:   connectMinIO(),
	}

	log.Println("✅ Toutes les bases de données sont connectées")
	return db
}

func connectMongo(ctx context.Context) *mongo.Database {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("❌ Erreur connexion MongoDB:", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("❌ MongoDB injoignable:", err)
	}

	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "campusbites"
	}

	log.Println("✅ Connecté à MongoDB :", name)
	return client.Database(name)
}

func connectRedis(ctx context.Context) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
	return client
}

func connectElastic() *elasticsearch.Client {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ Elasticsearch non configuré — recherche menu désactivée")
		return nil
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️ Erreur création client Elasticsearch:", err)
		return nil
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable:", err)
		return nil
	}
	defer res.Body.Close()

	log.Println("✅ Connecté à Elasticsearch")
	return client
}

func connectMinIO() *minio.Client {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️ MinIO non configuré — upload de preuves de paiement désactivé")
		return nil
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		log.Println("⚠️ Erreur connexion MinIO:", err)
		return nil
	}

	log.Println("✅ Connecté à MinIO :", endpoint)
	return client
}
