package services

import (
	"context"
	"fmt"
	"slices"

	"flatmates_server/models"
	"flatmates_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchService implements the swipe mechanics: candidate selection,
// like/dislike recording and mutual-match listing. Matches are derived from
// the two liked sets on every read, never stored.
type MatchService struct {
	Dynamo DynamoAPI
}

// PotentialCandidates returns every user of the opposite role that the
// requester has not yet liked or disliked. No ranking or preference
// weighting is applied; the result follows the store's natural order. An
// empty result is a normal terminal state, not an error.
func (ms *MatchService) PotentialCandidates(ctx context.Context, requesterID string) ([]models.User, error) {
	requester, err := ms.getUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	exclude := map[string]struct{}{requesterID: {}}
	for _, id := range requester.Liked {
		exclude[id] = struct{}{}
	}
	for _, id := range requester.Disliked {
		exclude[id] = struct{}{}
	}

	candidates := []models.User{}
	err = ms.Dynamo.ScanWithFilter(ctx, models.UsersTable,
		map[string]string{"userType": models.OppositeRole(requester.UserType)},
		func(item map[string]types.AttributeValue) bool {
			id := utils.ExtractString(item, "userId")
			_, skip := exclude[id]
			return !skip
		}, &candidates)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		candidates[i].Sanitize()
	}
	return candidates, nil
}

// Like records a like edge from the requester to the target and reports
// whether the target had already liked the requester back. The requester's
// liked/disliked sets are mutated in one atomic store update; the target's
// record is only read.
func (ms *MatchService) Like(ctx context.Context, requesterID, targetID string) (bool, error) {
	target, err := ms.checkTarget(ctx, requesterID, targetID)
	if err != nil {
		return false, err
	}

	if err := ms.Dynamo.UpdateSetMembership(ctx, models.UsersTable, userKey(requesterID), "liked", "disliked", targetID); err != nil {
		return false, err
	}

	return slices.Contains(target.Liked, requesterID), nil
}

// Dislike records a dislike edge from the requester to the target. Never
// produces a match.
func (ms *MatchService) Dislike(ctx context.Context, requesterID, targetID string) error {
	if _, err := ms.checkTarget(ctx, requesterID, targetID); err != nil {
		return err
	}
	return ms.Dynamo.UpdateSetMembership(ctx, models.UsersTable, userKey(requesterID), "disliked", "liked", targetID)
}

// Matches returns every user the requester has liked who has liked the
// requester back, credentials stripped. Liked ids that no longer resolve to
// a user are skipped.
func (ms *MatchService) Matches(ctx context.Context, requesterID string) ([]models.User, error) {
	requester, err := ms.getUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	matches := []models.User{}
	for _, likedID := range requester.Liked {
		liked, err := ms.getUser(ctx, likedID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		if slices.Contains(liked.Liked, requesterID) {
			liked.Sanitize()
			matches = append(matches, *liked)
		}
	}
	return matches, nil
}

// checkTarget validates a like/dislike target: it must exist and must not be
// the requester. The fetched record doubles as the reciprocity snapshot.
func (ms *MatchService) checkTarget(ctx context.Context, requesterID, targetID string) (*models.User, error) {
	if targetID == requesterID {
		return nil, fmt.Errorf("cannot record a preference toward yourself: %w", ErrValidation)
	}
	return ms.getUser(ctx, targetID)
}

func (ms *MatchService) getUser(ctx context.Context, userID string) (*models.User, error) {
	item, err := ms.Dynamo.GetItem(ctx, models.UsersTable, userKey(userID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}
