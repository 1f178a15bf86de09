// Package service contains the application use cases that sit between the
// HTTP layer and the stores: account registration and login here, word
// review in the word_review subpackage, token handling in auth.
//
// Services receive their stores through constructor injection and own the
// transaction boundaries of operations that span several stores.
package service
