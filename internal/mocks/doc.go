// Package mocks provides shared test doubles for the service and store
// interfaces.
//
// Service doubles use function fields with fixed fallback values:
//
//	svc := &mocks.MockWordReviewService{
//	    PeekNextFn: func(ctx context.Context, userID uuid.UUID) (*word_review.NextWord, error) {
//	        return &word_review.NextWord{Word: "hola"}, nil
//	    },
//	}
//
// Store doubles embed testify's mock.Mock and are configured with On.
package mocks
