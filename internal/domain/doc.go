// Package domain contains the QuickRecap entities (users, activities,
// favorites, ratings, play history, error reports and uploaded files)
// together with the constructors and validation rules that keep them
// consistent. It has no knowledge of HTTP or storage.
package domain
