/*
Package iti generates constrained-random inter-trial intervals.

Intervals are drawn from a shifted, right-censored exponential distribution.
Whole batches are rejected until their sum lands within a leeway band around
n·mean, so the total time spent in ITIs is predictable while individual
intervals remain unpredictable to the participant.

The retry loop is bounded: when the band cannot be met within the retry
budget, the batch whose sum came closest is returned and the shortfall is
reported through Result.Exhausted.
*/
package iti
