package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/rocketstore/customers-api/internal/model"
	"github.com/rocketstore/customers-api/pkg/db/transactor"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrEmailTaken is raised on customer creation when store unique
// constraint on email is violated
var ErrEmailTaken = errors.New("customer with such email already exists")

const pgUniqueViolationCode = "23505"

const (
	mongoDatabase           = "customers"
	mongoCustomerCollection = "customers"
)

// escapeLike neutralizes LIKE metacharacters in filter values so they
// match literally, the same way regexp.QuoteMeta does for mongo
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CustomerFilter carries optional case-insensitive substring filters for listing
type CustomerFilter struct {
	Name  string
	Email string
}

// CustomerRepository provides access to customer records. FindByID
// returns nil customer when no record exists
type CustomerRepository interface {
	Create(context.Context, *model.Customer) error
	FindByID(context.Context, string) (*model.Customer, error)
	FindAll(context.Context, CustomerFilter) ([]*model.Customer, error)
	DeleteByID(context.Context, string) (bool, error)
}

type postgresCustomerRepository struct {
	e transactor.PgxWithinTransactionExecutor
}

// NewPostgresCustomerRepository builds CustomerRepository on top of PostgreSQL
func NewPostgresCustomerRepository(e transactor.PgxWithinTransactionExecutor) CustomerRepository {
	return &postgresCustomerRepository{e: e}
}

func (r *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := "INSERT INTO customers(id, name, email, vat_number, city) VALUES($1, $2, $3, $4, $5)"
	if _, err := r.e.Executor(ctx).Exec(ctx, q, c.ID, c.Name, c.Email, c.VatNumber, c.City); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	q := "SELECT id, name, email, vat_number, city FROM customers WHERE id = $1"
	row := r.e.Executor(ctx).QueryRow(ctx, q, id)
	return r.scanRow(row)
}

func (r *postgresCustomerRepository) FindAll(ctx context.Context, filter CustomerFilter) ([]*model.Customer, error) {
	q := "SELECT id, name, email, vat_number, city FROM customers"

	args := make([]any, 0, 2)
	if filter.Name != "" {
		args = append(args, escapeLike.Replace(filter.Name))
		q += fmt.Sprintf(` WHERE name ILIKE '%%' || $%d || '%%' ESCAPE '\'`, len(args))
	}

	if filter.Email != "" {
		clause := " WHERE"
		if len(args) > 0 {
			clause = " AND"
		}
		args = append(args, escapeLike.Replace(filter.Email))
		q += fmt.Sprintf(`%s email ILIKE '%%' || $%d || '%%' ESCAPE '\'`, clause, len(args))
	}

	rows, err := r.e.Executor(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.VatNumber, &c.City); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresCustomerRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	q := "DELETE FROM customers WHERE id = $1"
	comm, err := r.e.Executor(ctx).Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresCustomerRepository) scanRow(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.VatNumber, &c.City); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

type mongoCustomerRepository struct {
	client *mongo.Client
}

// NewMongoCustomerRepository builds CustomerRepository on top of MongoDB
func NewMongoCustomerRepository(client *mongo.Client) CustomerRepository {
	return &mongoCustomerRepository{client: client}
}

func (r *mongoCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	if _, err := r.collection().InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *mongoCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	if err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoCustomerRepository) FindAll(ctx context.Context, filter CustomerFilter) ([]*model.Customer, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
	}

	if filter.Email != "" {
		query["email"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Email), Options: "i"}
	}

	cur, err := r.collection().Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	customers := make([]*model.Customer, 0)
	if err := cur.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *mongoCustomerRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoCustomerRepository) collection() *mongo.Collection {
	return r.client.Database(mongoDatabase).Collection(mongoCustomerCollection)
}

// EnsureMongoCustomerIndexes creates unique customer email index. Strength 2
// collation makes uniqueness case-insensitive, mirroring the postgres
// lower(email) index
func EnsureMongoCustomerIndexes(ctx context.Context, client *mongo.Client) error {
	collection := client.Database(mongoDatabase).Collection(mongoCustomerCollection)

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	})
	return err
}
