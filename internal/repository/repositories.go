package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
)

type Repositories struct {
	MemberRepo MemberRepository
}

func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		MemberRepo: NewMemberRepository(db.Collection(MembersCollection)),
	}
}
