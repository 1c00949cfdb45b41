package actor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrActorNotFound = errors.New("actor not found")

type ActorRepo interface {
	// Store stores a new Actor and returns its generated id.
	Store(ctx context.Context, a Actor) (int, error)
	GetByUid(ctx context.Context, uid string) (Actor, error)
	GetAll(ctx context.Context) ([]Actor, error)
}

type ActorRepoImpl struct {
	db *sql.DB
}

func NewActorRepo(db *sql.DB) *ActorRepoImpl {
	return &ActorRepoImpl{db: db}
}

func (r ActorRepoImpl) Store(ctx context.Context, a Actor) (int, error) {
	query := `INSERT INTO actor (uid, name, role) VALUES ($1, $2, $3) RETURNING id`

	var id int
	if err := r.db.QueryRowContext(ctx, query, a.Uid, a.Name, string(a.Role)).Scan(&id); err != nil {
		err := fmt.Errorf("could not store actor: %v", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r ActorRepoImpl) GetByUid(ctx context.Context, uid string) (Actor, error) {
	query := `SELECT id, uid, name, role FROM actor WHERE uid = $1`

	row := r.db.QueryRowContext(ctx, query, uid)

	var a Actor
	var role string
	if err := row.Scan(&a.Id, &a.Uid, &a.Name, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Actor{}, ErrActorNotFound
		}
		err := fmt.Errorf("could not scan actor: %v", err)
		log.Error(err)
		return Actor{}, err
	}
	a.Role = Role(role)
	return a, nil
}

func (r ActorRepoImpl) GetAll(ctx context.Context) ([]Actor, error) {
	query := `SELECT id, uid, name, role FROM actor ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	actors := make([]Actor, 0)
	for rows.Next() {
		var a Actor
		var role string
		if err := rows.Scan(&a.Id, &a.Uid, &a.Name, &role); err != nil {
			err := fmt.Errorf("could not scan actor: %v", err)
			log.Error(err)
			return nil, err
		}
		a.Role = Role(role)
		actors = append(actors, a)
	}
	return actors, rows.Err()
}
