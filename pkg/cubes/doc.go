// Package cubes scores cube-drawing games of the form
//
//	Game 3: 8 green, 6 blue, 20 red; 5 blue, 4 red, 13 green
//
// A game is possible when no set asks for more cubes of a colour than the
// bag holds; its power is the product of the per-colour maxima.
package cubes
