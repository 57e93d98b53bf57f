package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/player --output domain/player --outpkg playermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TeamRepository --dir ../domain/rating --output domain/rating --outpkg ratingmock --filename team_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LeagueRepository --dir ../domain/rating --output domain/rating --outpkg ratingmock --filename league_repository_mock.go
