package store

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-redis/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Database = "inspection"

// Collection names, centralized so no identifier literal is duplicated
// across store files.
const (
	UsersCollection          = "users"
	CredentialsCollection    = "credentials"
	AccommodationsCollection = "accommodations"
	FacilitiesCollection     = "facilities"
	RoomsCollection          = "rooms"
	CottagesCollection       = "cottages"
	ServicesCollection       = "services"
	EmployeesCollection      = "employees"
)

func GetClientWithHTTPConfig(host, port string, httpClient *http.Client) (*mongo.Client, error) {
	uri := fmt.Sprintf("mongodb://%s:%s/", host, port)
	optionsClient := options.Client().ApplyURI(uri).SetHTTPClient(httpClient)
	return mongo.Connect(context.TODO(), optionsClient)
}

func GetRedisClient(host, port string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port),
	})

	if err := client.Ping().Err(); err != nil {
		return nil, err
	}
	return client, nil
}
