package ethereum

const factoryABIJSON = `[
  {"type":"function","name":"deployRaffle","stateMutability":"nonpayable",
   "inputs":[{"name":"token","type":"address"},{"name":"ticketPrice","type":"uint256"},{"name":"duration","type":"uint256"},{"name":"prizePool","type":"uint256"}],
   "outputs":[{"name":"","type":"address"}]},
  {"type":"event","name":"RaffleDeployed","anonymous":false,
   "inputs":[{"name":"raffle","type":"address","indexed":true},{"name":"token","type":"address","indexed":true},{"name":"ticketPrice","type":"uint256","indexed":false},{"name":"duration","type":"uint256","indexed":false},{"name":"prizePool","type":"uint256","indexed":false}]}
]`

const raffleABIJSON = `[
  {"type":"function","name":"unpause","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"pause","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"paused","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"raffleEndTime","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"ticketOwners","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"initiateWinnerSelection","stateMutability":"nonpayable",
   "inputs":[{"name":"commitHash","type":"bytes32"},{"name":"signature","type":"bytes"}],"outputs":[]},
  {"type":"function","name":"completeWinnerSelection","stateMutability":"nonpayable",
   "inputs":[{"name":"randomValue","type":"bytes32"},{"name":"seed","type":"bytes32"},{"name":"winners","type":"address[]"}],"outputs":[]},
  {"type":"function","name":"getWinners","stateMutability":"view","inputs":[],
   "outputs":[{"name":"winners","type":"address[]"},{"name":"prizes","type":"uint256[]"}]},
  {"type":"function","name":"getRunnersUp","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
  {"type":"function","name":"getRaffleInfo","stateMutability":"view","inputs":[],
   "outputs":[{"name":"status","type":"string"},{"name":"currentPrizePool","type":"uint256"},{"name":"timeLeft","type":"uint256"},{"name":"participants","type":"uint256"},{"name":"needsFallback","type":"bool"}]}
]`
