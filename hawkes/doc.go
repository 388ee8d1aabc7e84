// Package hawkes implements likelihood estimation and next-event prediction
// for a continuous-time marked point process driven by a decaying recurrent
// state (a "neural Hawkes" process).
//
// # Reading Guide
//
// Start with these three files to understand the estimation kernel:
//   - sequence.go: EventSequence layout, BOS padding, and batch validation
//   - likelihood.go: the exact event term plus the Monte-Carlo non-event integral
//   - predictor.go: deterministic quadrature for next-event time/type prediction
//
// # Architecture
//
// The package defines the collaborator interfaces and bridge types;
// implementations live in sub-packages:
//   - hawkes/ctlstm/: reference continuous-time LSTM cell, embedding table,
//     and softplus intensity layer
//   - hawkes/workload/: synthetic sequence generation (Poisson, self-exciting
//     Hawkes via thinning) and CSV dataset I/O
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - IntensityModel: hidden state -> per-type intensity vector
//   - RecurrentNetwork: IntensityModel plus embedding lookup and one
//     LSTM-style update per observed event
//
// Everything here is a pure transform over immutable batches: the only
// randomness is the explicitly passed *rand.Rand consumed by the uniform
// time sampler, so a fixed RunKey reproduces results bit for bit.
package hawkes
