// Package calibration recovers the calibration value hidden in a line of
// text: the two-digit number made of the first and the last digit found.
//
// Two readings of "digit" are supported. Digits accepts decimal digits
// only. Words additionally accepts the spelled-out words one..nine, found
// independently of each other, so words that share letters ("eightwo")
// both count.
package calibration
